package repository

import (
	"context"
	"encoding/json"
	"errors"

	"banterhall/internal/models"
	"banterhall/internal/store"
)

// PostRepository defines persistence operations for board posts.
type PostRepository interface {
	Get(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id string, fn func(p *models.Post) error) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Post, error)
}

type postRepository struct {
	store store.Store
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(s store.Store) PostRepository {
	return &postRepository{store: s}
}

func (r *postRepository) Get(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.store.Get(ctx, store.PostKey(id), &post)
	if errors.Is(err, store.ErrNotFound) {
		return nil, models.NewNotFoundError("Post", id)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.store.Set(ctx, store.PostKey(post.ID), post, 0); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Update applies fn to the post inside an atomic read-modify-write so
// concurrent votes land on a consistent tally.
func (r *postRepository) Update(ctx context.Context, id string, fn func(p *models.Post) error) (*models.Post, error) {
	var updated models.Post
	err := r.store.Update(ctx, store.PostKey(id), func(current []byte) ([]byte, error) {
		if current == nil {
			return nil, models.NewNotFoundError("Post", id)
		}
		var post models.Post
		if err := json.Unmarshal(current, &post); err != nil {
			return nil, err
		}
		if err := fn(&post); err != nil {
			return nil, err
		}
		updated = post
		return json.Marshal(&post)
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

func (r *postRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, store.PostKey(id)); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	docs, err := r.store.GetByPrefix(ctx, store.PostKeyPrefix)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	posts := make([]models.Post, 0, len(docs))
	for _, doc := range docs {
		var post models.Post
		if err := json.Unmarshal(doc, &post); err != nil {
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}
