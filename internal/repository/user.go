// Package repository implements the data access layer over the record store.
package repository

import (
	"context"
	"encoding/json"
	"errors"

	"banterhall/internal/models"
	"banterhall/internal/store"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Get(ctx context.Context, username string) (*models.User, error)
	Find(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, username string, fn func(u *models.User) error) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type userRepository struct {
	store store.Store
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{store: s}
}

// Get returns the user or a NOT_FOUND application error.
func (r *userRepository) Get(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.store.Get(ctx, store.UserKey(username), &user)
	if errors.Is(err, store.ErrNotFound) {
		return nil, models.NewNotFoundError("User", username)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// Find returns (nil, nil) when the user does not exist.
func (r *userRepository) Find(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.store.Get(ctx, store.UserKey(username), &user)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// Create inserts a new user record. Fails with a conflict error when the
// username is already taken.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	ok, err := r.store.SetNX(ctx, store.UserKey(user.Username), user, 0)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !ok {
		return models.NewConflictError("Username already exists")
	}
	return nil
}

// Update applies fn to the user record inside an atomic read-modify-write.
// Returns the updated record.
func (r *userRepository) Update(ctx context.Context, username string, fn func(u *models.User) error) (*models.User, error) {
	var updated models.User
	err := r.store.Update(ctx, store.UserKey(username), func(current []byte) ([]byte, error) {
		if current == nil {
			return nil, models.NewNotFoundError("User", username)
		}
		var user models.User
		if err := json.Unmarshal(current, &user); err != nil {
			return nil, err
		}
		if err := fn(&user); err != nil {
			return nil, err
		}
		updated = user
		return json.Marshal(&user)
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}
	return &updated, nil
}

// List returns every user record.
func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	docs, err := r.store.GetByPrefix(ctx, store.UserKeyPrefix)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		var user models.User
		if err := json.Unmarshal(doc, &user); err != nil {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}
