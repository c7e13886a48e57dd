package service

import (
	"context"

	"banterhall/internal/middleware"
	"banterhall/internal/models"
	"banterhall/internal/repository"
)

// LedgerService owns every coin balance mutation. All mutations run as
// atomic read-modify-writes so concurrent adjustments cannot lose updates,
// and no mutation may drive a balance below zero.
type LedgerService struct {
	userRepo repository.UserRepository
}

// NewLedgerService returns a new LedgerService.
func NewLedgerService(userRepo repository.UserRepository) *LedgerService {
	return &LedgerService{userRepo: userRepo}
}

// AdjustBalance applies an admin-initiated coin adjustment. The amount may be
// negative but must not be zero and must not take the balance below zero.
// Adjustments are tracked separately from game results as awarded coins.
func (s *LedgerService) AdjustBalance(ctx context.Context, username string, amount int) (*models.User, error) {
	if amount == 0 {
		return nil, models.NewValidationError("Username and non-zero amount are required")
	}

	updated, err := s.userRepo.Update(ctx, username, func(u *models.User) error {
		if u.Balance+amount < 0 {
			return models.NewValidationError("Cannot reduce balance below 0")
		}
		u.Balance += amount
		u.Stats.CoinsAwarded += amount
		return nil
	})
	if err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "balance adjusted",
		"username", username, "amount", amount, "new_balance", updated.Balance)
	return updated, nil
}

// DebitStake escrows a lobby stake from the user's balance. Fails with an
// insufficient-funds error when the balance cannot cover it.
func (s *LedgerService) DebitStake(ctx context.Context, username string, amount int) error {
	if amount <= 0 {
		return nil
	}
	_, err := s.userRepo.Update(ctx, username, func(u *models.User) error {
		if u.Balance < amount {
			return models.NewInsufficientFundsError("Insufficient balance")
		}
		u.Balance -= amount
		return nil
	})
	return err
}

// RefundStake returns a previously escrowed stake.
func (s *LedgerService) RefundStake(ctx context.Context, username string, amount int) error {
	if amount <= 0 {
		return nil
	}
	_, err := s.userRepo.Update(ctx, username, func(u *models.User) error {
		u.Balance += amount
		return nil
	})
	return err
}

// RecordGamePlayed bumps the user's games-played counter.
func (s *LedgerService) RecordGamePlayed(ctx context.Context, username string) error {
	_, err := s.userRepo.Update(ctx, username, func(u *models.User) error {
		u.Stats.GamesPlayed++
		return nil
	})
	return err
}
