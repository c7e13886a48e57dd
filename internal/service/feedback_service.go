package service

import (
	"context"
	"sort"
	"time"

	"banterhall/internal/middleware"
	"banterhall/internal/models"
	"banterhall/internal/repository"

	"github.com/google/uuid"
)

const (
	maxFeedbackSubjectLen = 100
	maxFeedbackMessageLen = 1000
	maxFeedbackReplyLen   = 1000
)

// FeedbackService manages user feedback threads and admin replies.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
}

// NewFeedbackService returns a new FeedbackService.
func NewFeedbackService(feedbackRepo repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{feedbackRepo: feedbackRepo}
}

type SubmitFeedbackInput struct {
	Username string
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// Submit opens a new feedback thread in the unread state.
func (s *FeedbackService) Submit(ctx context.Context, in SubmitFeedbackInput) (*models.Feedback, error) {
	if in.Subject == "" || in.Message == "" {
		return nil, models.NewValidationError("Subject and message are required")
	}
	if len(in.Subject) > maxFeedbackSubjectLen {
		return nil, models.NewValidationError("Subject must be 100 characters or less")
	}
	if len(in.Message) > maxFeedbackMessageLen {
		return nil, models.NewValidationError("Message must be 1000 characters or less")
	}

	fb := &models.Feedback{
		ID:        uuid.NewString(),
		Username:  in.Username,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    models.FeedbackStatusUnread,
		Replies:   []models.FeedbackReply{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "feedback submitted", "feedback_id", fb.ID, "username", in.Username)
	return fb, nil
}

// ListForUser returns the user's own feedback threads, newest first.
func (s *FeedbackService) ListForUser(ctx context.Context, username string) ([]models.Feedback, error) {
	all, err := s.feedbackRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]models.Feedback, 0)
	for _, fb := range all {
		if fb.Username == username {
			mine = append(mine, fb)
		}
	}
	sortFeedbackNewestFirst(mine)
	return mine, nil
}

// ListAll returns every feedback thread, newest first.
func (s *FeedbackService) ListAll(ctx context.Context) ([]models.Feedback, error) {
	all, err := s.feedbackRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortFeedbackNewestFirst(all)
	return all, nil
}

// Reply appends an admin reply and moves the thread to replied. Replied is
// terminal for status purposes: later reads do not regress it.
func (s *FeedbackService) Reply(ctx context.Context, feedbackID, reply string) (*models.Feedback, error) {
	if reply == "" {
		return nil, models.NewValidationError("Reply is required")
	}
	if len(reply) > maxFeedbackReplyLen {
		return nil, models.NewValidationError("Reply must be 1000 characters or less")
	}

	updated, err := s.feedbackRepo.Update(ctx, feedbackID, func(fb *models.Feedback) error {
		fb.Replies = append(fb.Replies, models.FeedbackReply{
			ID:        uuid.NewString(),
			Message:   reply,
			CreatedAt: time.Now().UTC(),
		})
		fb.Status = models.FeedbackStatusReplied
		return nil
	})
	if err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "feedback replied", "feedback_id", feedbackID)
	return updated, nil
}

// MarkRead moves an unread thread to read. Read and replied threads are
// returned unchanged.
func (s *FeedbackService) MarkRead(ctx context.Context, feedbackID string) (*models.Feedback, error) {
	return s.feedbackRepo.Update(ctx, feedbackID, func(fb *models.Feedback) error {
		if fb.Status == models.FeedbackStatusUnread {
			fb.Status = models.FeedbackStatusRead
		}
		return nil
	})
}

func sortFeedbackNewestFirst(items []models.Feedback) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
