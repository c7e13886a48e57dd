package repository

import (
	"context"
	"testing"
	"time"

	"banterhall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	user := &models.User{
		Username:  "alice",
		Password:  "hashed",
		Balance:   100,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "hashed", got.Password, "password hash must survive persistence")
	assert.Equal(t, 100, got.Balance)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "alice", Balance: 100}))

	err := repo.Create(ctx, &models.User{Username: "alice", Balance: 999})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)

	got, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 100, got.Balance, "duplicate create must not clobber the record")
}

func TestUserRepository_GetMissing(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))

	_, err := repo.Get(context.Background(), "ghost")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepository_FindMissingReturnsNil(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))

	got, err := repo.Find(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "alice", Balance: 100}))

	updated, err := repo.Update(ctx, "alice", func(u *models.User) error {
		u.Balance += 50
		u.Stats.GamesPlayed++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 150, updated.Balance)
	assert.Equal(t, 1, updated.Stats.GamesPlayed)

	got, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 150, got.Balance)
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))

	_, err := repo.Update(context.Background(), "ghost", func(u *models.User) error {
		return nil
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepository_UpdatePropagatesFnError(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "alice", Balance: 10}))

	_, err := repo.Update(ctx, "alice", func(u *models.User) error {
		return models.NewInsufficientFundsError("Insufficient coins")
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INSUFFICIENT_FUNDS", appErr.Code)

	got, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Balance, "rejected update must not write")
}

func TestUserRepository_List(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "alice"}))
	require.NoError(t, repo.Create(ctx, &models.User{Username: "bob"}))
	require.NoError(t, repo.Create(ctx, &models.User{Username: "carol"}))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}
