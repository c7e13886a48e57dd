package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"banterhall/internal/middleware"
	"banterhall/internal/models"
	"banterhall/internal/observability"
	"banterhall/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// Custom lobby durations must fall within these bounds, in hours.
const (
	minLobbyDurationHours = 1
	maxLobbyDurationHours = 168
)

// LobbyService manages game lobbies: hosting, joining, cancellation, and
// expiry. Stakes are escrowed on entry and refunded when a lobby is
// cancelled or expires without starting.
type LobbyService struct {
	gameRepo repository.GameRepository
	ledger   *LedgerService
}

// NewLobbyService returns a new LobbyService.
func NewLobbyService(gameRepo repository.GameRepository, ledger *LedgerService) *LobbyService {
	return &LobbyService{gameRepo: gameRepo, ledger: ledger}
}

type CreateGameInput struct {
	Host           string
	Name           string  `json:"name"`
	GameType       string  `json:"gameType"`
	Stake          string  `json:"stake"`
	LobbyDuration  string  `json:"lobbyDuration"`
	CustomDuration float64 `json:"customDuration"`
}

// lobbyDurationHours resolves the requested lifetime of a lobby.
func lobbyDurationHours(in CreateGameInput) (float64, error) {
	switch in.LobbyDuration {
	case "2h":
		return 2, nil
	case "1d":
		return 24, nil
	case "custom":
		if in.CustomDuration < minLobbyDurationHours || in.CustomDuration > maxLobbyDurationHours {
			return 0, models.NewValidationError("Custom duration must be between " +
				strconv.Itoa(minLobbyDurationHours) + " and " + strconv.Itoa(maxLobbyDurationHours) + " hours")
		}
		return in.CustomDuration, nil
	default:
		return 1, nil
	}
}

// CreateGame hosts a new lobby. The host's stake is escrowed up front.
func (s *LobbyService) CreateGame(ctx context.Context, in CreateGameInput) (*models.Game, error) {
	if in.Name == "" || in.GameType == "" || in.Stake == "" {
		return nil, models.NewValidationError("Game name, type and stake are required")
	}
	if !models.IsValidGameType(in.GameType) {
		return nil, models.NewValidationError("Invalid game type")
	}

	stakeAmount, err := models.ParseStake(in.Stake)
	if err != nil {
		return nil, err
	}

	hours, err := lobbyDurationHours(in)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.DebitStake(ctx, in.Host, stakeAmount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	game := &models.Game{
		ID:             uuid.NewString(),
		Name:           in.Name,
		GameType:       in.GameType,
		Host:           in.Host,
		Stake:          in.Stake,
		Status:         models.GameStatusWaiting,
		CurrentPlayers: 1,
		MaxPlayers:     models.MaxPlayersFor(in.GameType),
		Players:        []string{in.Host},
		CreatedAt:      now,
		ExpiryTime:     now.Add(time.Duration(hours * float64(time.Hour))),
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		// Hand the escrow back; the lobby never existed.
		if refundErr := s.ledger.RefundStake(ctx, in.Host, stakeAmount); refundErr != nil {
			middleware.Logger.ErrorContext(ctx, "stake refund failed after create error",
				"username", in.Host, "amount", stakeAmount, "error", refundErr)
		}
		return nil, err
	}

	if err := s.ledger.RecordGamePlayed(ctx, in.Host); err != nil {
		middleware.Logger.ErrorContext(ctx, "games played increment failed",
			"game_id", game.ID, "username", in.Host, "error", err)
	}

	middleware.Logger.InfoContext(ctx, "game created",
		"game_id", game.ID, "host", in.Host, "name", in.Name, "expires_at", game.ExpiryTime)
	return game, nil
}

// JoinGame seats the user in the lobby, escrowing their stake. Blackjack
// starts as soon as its second seat fills; other games fill up to capacity.
func (s *LobbyService) JoinGame(ctx context.Context, gameID, username string) (*models.Game, error) {
	game, err := s.gameRepo.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	stakeAmount, err := models.ParseStake(game.Stake)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.DebitStake(ctx, username, stakeAmount); err != nil {
		return nil, err
	}

	updated, err := s.gameRepo.Update(ctx, gameID, func(g *models.Game) error {
		if g.Host == username {
			return models.NewValidationError("You cannot join your own game")
		}
		if g.Terminal() {
			return models.NewValidationError("Game is no longer open")
		}
		if g.Status == models.GameStatusFull || g.Status == models.GameStatusInProgress {
			return models.NewValidationError("Game is full")
		}
		if g.HasPlayer(username) {
			return models.NewConflictError("You have already joined this game")
		}

		g.CurrentPlayers++
		g.Players = append(g.Players, username)

		if g.GameType == models.GameTypeBlackjack && g.CurrentPlayers >= 2 {
			g.Status = models.GameStatusInProgress
		} else if g.CurrentPlayers >= g.MaxPlayers {
			g.Status = models.GameStatusFull
		}
		return nil
	})
	if err != nil {
		if refundErr := s.ledger.RefundStake(ctx, username, stakeAmount); refundErr != nil {
			middleware.Logger.ErrorContext(ctx, "stake refund failed after join error",
				"username", username, "amount", stakeAmount, "error", refundErr)
		}
		return nil, err
	}

	if err := s.ledger.RecordGamePlayed(ctx, username); err != nil {
		middleware.Logger.ErrorContext(ctx, "games played increment failed",
			"game_id", gameID, "username", username, "error", err)
	}

	middleware.Logger.InfoContext(ctx, "player joined game",
		"game_id", gameID, "username", username,
		"status", updated.Status, "players", updated.CurrentPlayers, "max_players", updated.MaxPlayers)
	return updated, nil
}

// ListGames returns every lobby in the store.
func (s *LobbyService) ListGames(ctx context.Context) ([]models.Game, error) {
	return s.gameRepo.List(ctx)
}

// ListGamesForAdmin returns every lobby, newest first, including completed
// and cancelled ones.
func (s *LobbyService) ListGamesForAdmin(ctx context.Context) ([]models.Game, error) {
	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.After(games[j].CreatedAt)
	})
	return games, nil
}

// CancelGame soft-deletes a lobby and refunds every seated player's stake.
// Already-terminal lobbies cannot be cancelled again.
func (s *LobbyService) CancelGame(ctx context.Context, gameID string) error {
	updated, err := s.gameRepo.Update(ctx, gameID, func(g *models.Game) error {
		if g.Terminal() {
			return models.NewConflictError("Game has already ended")
		}
		now := time.Now().UTC()
		g.Status = models.GameStatusCancelled
		g.EndedAt = &now
		return nil
	})
	if err != nil {
		return err
	}

	s.refundPlayers(ctx, updated)

	middleware.Logger.InfoContext(ctx, "game cancelled", "game_id", gameID)
	return nil
}

// ExpireOverdue cancels every waiting lobby whose expiry time has passed,
// refunding escrowed stakes. Returns the number of lobbies expired.
func (s *LobbyService) ExpireOverdue(ctx context.Context) (int, error) {
	span, ctx := observability.NewSpan(ctx, "lobby.expire_overdue")
	defer span.End()

	games, err := s.gameRepo.List(ctx)
	if err != nil {
		span.SetError(err)
		return 0, err
	}

	now := time.Now().UTC()
	expired := 0
	for i := range games {
		g := &games[i]
		if g.Status != models.GameStatusWaiting || g.ExpiryTime.After(now) {
			continue
		}

		updated, err := s.gameRepo.Update(ctx, g.ID, func(cur *models.Game) error {
			if cur.Status != models.GameStatusWaiting {
				return models.NewConflictError("Game is no longer waiting")
			}
			ended := time.Now().UTC()
			cur.Status = models.GameStatusCancelled
			cur.EndedAt = &ended
			return nil
		})
		if err != nil {
			// Raced with a join or cancel; the next sweep picks it up if needed.
			continue
		}

		s.refundPlayers(ctx, updated)
		observability.LobbiesExpired.Inc()
		expired++

		middleware.Logger.InfoContext(ctx, "lobby expired",
			"game_id", updated.ID, "host", updated.Host, "expired_at", updated.ExpiryTime)
	}
	span.AddAttributes(attribute.Int("lobbies.expired", expired))
	return expired, nil
}

// refundPlayers returns each seated player's escrowed stake.
func (s *LobbyService) refundPlayers(ctx context.Context, game *models.Game) {
	stakeAmount, err := models.ParseStake(game.Stake)
	if err != nil || stakeAmount == 0 {
		return
	}
	for _, player := range game.Players {
		if err := s.ledger.RefundStake(ctx, player, stakeAmount); err != nil {
			middleware.Logger.ErrorContext(ctx, "stake refund failed",
				"game_id", game.ID, "username", player, "amount", stakeAmount, "error", err)
		}
	}
}
