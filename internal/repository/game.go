package repository

import (
	"context"
	"encoding/json"
	"errors"

	"banterhall/internal/models"
	"banterhall/internal/store"
)

// GameRepository defines persistence operations for game lobbies.
type GameRepository interface {
	Get(ctx context.Context, id string) (*models.Game, error)
	Create(ctx context.Context, game *models.Game) error
	Update(ctx context.Context, id string, fn func(g *models.Game) error) (*models.Game, error)
	List(ctx context.Context) ([]models.Game, error)
}

type gameRepository struct {
	store store.Store
}

// NewGameRepository returns a new GameRepository implementation.
func NewGameRepository(s store.Store) GameRepository {
	return &gameRepository{store: s}
}

func (r *gameRepository) Get(ctx context.Context, id string) (*models.Game, error) {
	var game models.Game
	err := r.store.Get(ctx, store.GameKey(id), &game)
	if errors.Is(err, store.ErrNotFound) {
		return nil, models.NewNotFoundError("Game", id)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &game, nil
}

func (r *gameRepository) Create(ctx context.Context, game *models.Game) error {
	if err := r.store.Set(ctx, store.GameKey(game.ID), game, 0); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Update applies fn to the lobby inside an atomic read-modify-write so
// concurrent joins cannot overfill it.
func (r *gameRepository) Update(ctx context.Context, id string, fn func(g *models.Game) error) (*models.Game, error) {
	var updated models.Game
	err := r.store.Update(ctx, store.GameKey(id), func(current []byte) ([]byte, error) {
		if current == nil {
			return nil, models.NewNotFoundError("Game", id)
		}
		var game models.Game
		if err := json.Unmarshal(current, &game); err != nil {
			return nil, err
		}
		if err := fn(&game); err != nil {
			return nil, err
		}
		updated = game
		return json.Marshal(&game)
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

func (r *gameRepository) List(ctx context.Context) ([]models.Game, error) {
	docs, err := r.store.GetByPrefix(ctx, store.GameKeyPrefix)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	games := make([]models.Game, 0, len(docs))
	for _, doc := range docs {
		var game models.Game
		if err := json.Unmarshal(doc, &game); err != nil {
			continue
		}
		games = append(games, game)
	}
	return games, nil
}
