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

// MessageService delivers one-shot admin messages to users, optionally
// carrying a coin adjustment.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	ledger      *LedgerService
}

// NewMessageService returns a new MessageService.
func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	ledger *LedgerService,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		ledger:      ledger,
	}
}

type SendMessageInput struct {
	Username   string `json:"username"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	CoinAmount int    `json:"coinAmount"`
}

// Send delivers an admin message to the named user. When a coin amount is
// attached the balance adjustment is applied first and the message is only
// stored if it succeeds, so a delivered coin message always reflects a coin
// movement that actually happened.
func (s *MessageService) Send(ctx context.Context, in SendMessageInput) error {
	if in.Username == "" || in.Title == "" || in.Message == "" {
		return models.NewValidationError("Username, title, and message are required")
	}

	user, err := s.userRepo.Find(ctx, in.Username)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User", in.Username)
	}

	if in.CoinAmount != 0 {
		if _, err := s.ledger.AdjustBalance(ctx, in.Username, in.CoinAmount); err != nil {
			return err
		}
	}

	msg := &models.AdminMessage{
		ID:         uuid.NewString(),
		Username:   in.Username,
		Title:      in.Title,
		Message:    in.Message,
		CoinAmount: in.CoinAmount,
		CreatedAt:  time.Now().UTC(),
		Read:       false,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return err
	}

	middleware.Logger.InfoContext(ctx, "admin message sent",
		"username", in.Username, "title", in.Title, "coin_amount", in.CoinAmount)
	return nil
}

// ListUnread returns the user's undelivered messages, newest first. Read
// messages are excluded permanently.
func (s *MessageService) ListUnread(ctx context.Context, username string) ([]models.AdminMessage, error) {
	all, err := s.messageRepo.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	unread := make([]models.AdminMessage, 0)
	for _, msg := range all {
		if !msg.Read {
			unread = append(unread, msg)
		}
	}
	sort.Slice(unread, func(i, j int) bool {
		return unread[i].CreatedAt.After(unread[j].CreatedAt)
	})
	return unread, nil
}

// MarkRead acknowledges delivery; the message never surfaces again.
func (s *MessageService) MarkRead(ctx context.Context, username, messageID string) error {
	_, err := s.messageRepo.Update(ctx, username, messageID, func(m *models.AdminMessage) error {
		m.Read = true
		return nil
	})
	return err
}
