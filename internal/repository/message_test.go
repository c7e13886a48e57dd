package repository

import (
	"context"
	"testing"

	"banterhall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_InboxScopedByUser(t *testing.T) {
	repo := NewMessageRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.AdminMessage{ID: "m1", Username: "alice", Title: "hi"}))
	require.NoError(t, repo.Create(ctx, &models.AdminMessage{ID: "m2", Username: "alice", Title: "again"}))
	require.NoError(t, repo.Create(ctx, &models.AdminMessage{ID: "m3", Username: "bob", Title: "other"}))

	msgs, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	msgs, err = repo.ListByUser(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "other", msgs[0].Title)
}

func TestMessageRepository_MarkRead(t *testing.T) {
	repo := NewMessageRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.AdminMessage{ID: "m1", Username: "alice"}))

	updated, err := repo.Update(ctx, "alice", "m1", func(m *models.AdminMessage) error {
		m.Read = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.Read)

	msgs, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Read)
}
