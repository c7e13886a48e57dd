// Package seed creates demo data for development environments: a handful of
// users with coin balances, open game lobbies, and banter board activity.
// Not intended for production use.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"banterhall/internal/store"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumGames    int
	NumPosts    int
	MaxComments int
	Password    string
}

// DefaultOptions returns a small demo preset.
func DefaultOptions() Options {
	return Options{
		NumUsers:    8,
		NumGames:    4,
		NumPosts:    6,
		MaxComments: 3,
		Password:    "demopass",
	}
}

// Demo populates the store with generated users, lobbies, posts, and
// comments. Existing records with colliding usernames are skipped.
func Demo(ctx context.Context, st store.Store, opts Options) error {
	f := NewFactory(st, opts)

	users, err := f.CreateUsers(ctx, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if len(users) == 0 {
		slog.Info("demo seed skipped, no new users created")
		return nil
	}

	if err := f.CreateGames(ctx, users, opts.NumGames); err != nil {
		return fmt.Errorf("seed games: %w", err)
	}
	if err := f.CreatePosts(ctx, users, opts.NumPosts); err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}

	slog.Info("demo data seeded",
		"users", len(users), "games", opts.NumGames, "posts", opts.NumPosts)
	return nil
}
