package repository

import (
	"context"
	"encoding/json"
	"errors"

	"banterhall/internal/models"
	"banterhall/internal/store"
)

// CommentRepository defines persistence operations for post comments.
type CommentRepository interface {
	Get(ctx context.Context, postID, commentID string) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, postID, commentID string, fn func(c *models.Comment) error) (*models.Comment, error)
	Delete(ctx context.Context, postID, commentID string) error
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
	DeleteByPost(ctx context.Context, postID string) error
}

type commentRepository struct {
	store store.Store
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(s store.Store) CommentRepository {
	return &commentRepository{store: s}
}

func (r *commentRepository) Get(ctx context.Context, postID, commentID string) (*models.Comment, error) {
	var comment models.Comment
	err := r.store.Get(ctx, store.CommentKey(postID, commentID), &comment)
	if errors.Is(err, store.ErrNotFound) {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.store.Set(ctx, store.CommentKey(comment.PostID, comment.ID), comment, 0); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) Update(ctx context.Context, postID, commentID string, fn func(c *models.Comment) error) (*models.Comment, error) {
	var updated models.Comment
	err := r.store.Update(ctx, store.CommentKey(postID, commentID), func(current []byte) ([]byte, error) {
		if current == nil {
			return nil, models.NewNotFoundError("Comment", commentID)
		}
		var comment models.Comment
		if err := json.Unmarshal(current, &comment); err != nil {
			return nil, err
		}
		if err := fn(&comment); err != nil {
			return nil, err
		}
		updated = comment
		return json.Marshal(&comment)
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

func (r *commentRepository) Delete(ctx context.Context, postID, commentID string) error {
	if err := r.store.Delete(ctx, store.CommentKey(postID, commentID)); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	docs, err := r.store.GetByPrefix(ctx, store.CommentPrefix(postID))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	comments := make([]models.Comment, 0, len(docs))
	for _, doc := range docs {
		var comment models.Comment
		if err := json.Unmarshal(doc, &comment); err != nil {
			continue
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// DeleteByPost removes every comment on the post. Used when a post is
// deleted so its thread does not orphan.
func (r *commentRepository) DeleteByPost(ctx context.Context, postID string) error {
	comments, err := r.ListByPost(ctx, postID)
	if err != nil {
		return err
	}
	if len(comments) == 0 {
		return nil
	}
	keys := make([]string, 0, len(comments))
	for _, c := range comments {
		keys = append(keys, store.CommentKey(postID, c.ID))
	}
	if err := r.store.Delete(ctx, keys...); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
