package repository

import (
	"context"
	"encoding/json"
	"errors"

	"banterhall/internal/models"
	"banterhall/internal/store"
)

// MessageRepository defines persistence operations for admin messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.AdminMessage) error
	Update(ctx context.Context, username, id string, fn func(m *models.AdminMessage) error) (*models.AdminMessage, error)
	ListByUser(ctx context.Context, username string) ([]models.AdminMessage, error)
}

type messageRepository struct {
	store store.Store
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(s store.Store) MessageRepository {
	return &messageRepository{store: s}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.AdminMessage) error {
	if err := r.store.Set(ctx, store.MessageKey(msg.Username, msg.ID), msg, 0); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) Update(ctx context.Context, username, id string, fn func(m *models.AdminMessage) error) (*models.AdminMessage, error) {
	var updated models.AdminMessage
	err := r.store.Update(ctx, store.MessageKey(username, id), func(current []byte) ([]byte, error) {
		if current == nil {
			return nil, models.NewNotFoundError("Message", id)
		}
		var msg models.AdminMessage
		if err := json.Unmarshal(current, &msg); err != nil {
			return nil, err
		}
		if err := fn(&msg); err != nil {
			return nil, err
		}
		updated = msg
		return json.Marshal(&msg)
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

// ListByUser returns every message in the user's inbox, read or not.
func (r *messageRepository) ListByUser(ctx context.Context, username string) ([]models.AdminMessage, error) {
	docs, err := r.store.GetByPrefix(ctx, store.MessagePrefix(username))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	msgs := make([]models.AdminMessage, 0, len(docs))
	for _, doc := range docs {
		var msg models.AdminMessage
		if err := json.Unmarshal(doc, &msg); err != nil {
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}
