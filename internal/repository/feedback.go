package repository

import (
	"context"
	"encoding/json"
	"errors"

	"banterhall/internal/models"
	"banterhall/internal/store"
)

// FeedbackRepository defines persistence operations for feedback threads.
type FeedbackRepository interface {
	Get(ctx context.Context, id string) (*models.Feedback, error)
	Create(ctx context.Context, fb *models.Feedback) error
	Update(ctx context.Context, id string, fn func(fb *models.Feedback) error) (*models.Feedback, error)
	List(ctx context.Context) ([]models.Feedback, error)
}

type feedbackRepository struct {
	store store.Store
}

// NewFeedbackRepository returns a new FeedbackRepository implementation.
func NewFeedbackRepository(s store.Store) FeedbackRepository {
	return &feedbackRepository{store: s}
}

func (r *feedbackRepository) Get(ctx context.Context, id string) (*models.Feedback, error) {
	var fb models.Feedback
	err := r.store.Get(ctx, store.FeedbackKey(id), &fb)
	if errors.Is(err, store.ErrNotFound) {
		return nil, models.NewNotFoundError("Feedback", id)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &fb, nil
}

func (r *feedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	if err := r.store.Set(ctx, store.FeedbackKey(fb.ID), fb, 0); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *feedbackRepository) Update(ctx context.Context, id string, fn func(fb *models.Feedback) error) (*models.Feedback, error) {
	var updated models.Feedback
	err := r.store.Update(ctx, store.FeedbackKey(id), func(current []byte) ([]byte, error) {
		if current == nil {
			return nil, models.NewNotFoundError("Feedback", id)
		}
		var fb models.Feedback
		if err := json.Unmarshal(current, &fb); err != nil {
			return nil, err
		}
		if err := fn(&fb); err != nil {
			return nil, err
		}
		updated = fb
		return json.Marshal(&fb)
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

func (r *feedbackRepository) List(ctx context.Context) ([]models.Feedback, error) {
	docs, err := r.store.GetByPrefix(ctx, store.FeedbackKeyPrefix)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	items := make([]models.Feedback, 0, len(docs))
	for _, doc := range docs {
		var fb models.Feedback
		if err := json.Unmarshal(doc, &fb); err != nil {
			continue
		}
		items = append(items, fb)
	}
	return items, nil
}
