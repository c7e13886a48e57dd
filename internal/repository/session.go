package repository

import (
	"context"
	"errors"
	"time"

	"banterhall/internal/models"
	"banterhall/internal/store"
)

// SessionRepository defines persistence operations for auth sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session, ttl time.Duration) error
	Find(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

type sessionRepository struct {
	store store.Store
}

// NewSessionRepository returns a new SessionRepository implementation.
func NewSessionRepository(s store.Store) SessionRepository {
	return &sessionRepository{store: s}
}

// Create stores the session under its token. A zero ttl means the session
// never expires.
func (r *sessionRepository) Create(ctx context.Context, session *models.Session, ttl time.Duration) error {
	if err := r.store.Set(ctx, store.SessionKey(session.Token), session, ttl); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Find returns (nil, nil) when the token has no session.
func (r *sessionRepository) Find(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := r.store.Get(ctx, store.SessionKey(token), &session)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	session.Token = token
	return &session, nil
}

// Delete removes the session. Deleting an absent token is not an error.
func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	if err := r.store.Delete(ctx, store.SessionKey(token)); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
