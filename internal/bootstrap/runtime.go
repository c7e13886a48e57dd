// Package bootstrap wires up runtime dependencies shared by the server and
// auxiliary commands: the record store, the built-in admin account, and
// optional demo data.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"banterhall/internal/config"
	"banterhall/internal/models"
	"banterhall/internal/repository"
	"banterhall/internal/seed"
	"banterhall/internal/store"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// AdminBalance is the coin balance granted to the built-in admin account.
const AdminBalance = 999999

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoData bool
}

// InitRuntime connects to the record store, ensures the built-in admin
// account exists, and optionally seeds demo data.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (store.Store, *redis.Client, error) {
	st, err := store.Connect(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("store connection failed: %w", err)
	}

	if err := EnsureAdmin(ctx, repository.NewUserRepository(st), cfg); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	if opts.SeedDemoData {
		if err := seed.Demo(ctx, st, seed.DefaultOptions()); err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return st, st.Client(), nil
}

// EnsureAdmin creates the configured admin account if it does not exist yet.
// An existing account is left untouched apart from the admin flag.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, cfg *config.Config) error {
	if cfg == nil || cfg.AdminUsername == "" {
		return nil
	}

	existing, err := users.Find(ctx, cfg.AdminUsername)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.IsAdmin {
			return nil
		}
		_, err := users.Update(ctx, cfg.AdminUsername, func(u *models.User) error {
			u.IsAdmin = true
			return nil
		})
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &models.User{
		Username:  cfg.AdminUsername,
		Password:  string(hashed),
		Balance:   AdminBalance,
		IsAdmin:   true,
		CreatedAt: time.Now(),
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	slog.Info("bootstrap admin account created", "username", cfg.AdminUsername)
	return nil
}
