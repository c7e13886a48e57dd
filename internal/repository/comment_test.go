package repository

import (
	"context"
	"testing"

	"banterhall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_ListByPost(t *testing.T) {
	repo := NewCommentRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Comment{ID: "c1", PostID: "p1", Author: "alice"}))
	require.NoError(t, repo.Create(ctx, &models.Comment{ID: "c2", PostID: "p1", Author: "bob"}))
	require.NoError(t, repo.Create(ctx, &models.Comment{ID: "c3", PostID: "p2", Author: "carol"}))

	comments, err := repo.ListByPost(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, comments, 2, "only the post's own thread is returned")

	comments, err = repo.ListByPost(ctx, "p2")
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestCommentRepository_DeleteByPost(t *testing.T) {
	repo := NewCommentRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Comment{ID: "c1", PostID: "p1"}))
	require.NoError(t, repo.Create(ctx, &models.Comment{ID: "c2", PostID: "p1"}))
	require.NoError(t, repo.Create(ctx, &models.Comment{ID: "c3", PostID: "p2"}))

	require.NoError(t, repo.DeleteByPost(ctx, "p1"))

	comments, err := repo.ListByPost(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, comments)

	comments, err = repo.ListByPost(ctx, "p2")
	require.NoError(t, err)
	assert.Len(t, comments, 1, "other threads are untouched")
}

func TestCommentRepository_UpdateVoteTally(t *testing.T) {
	repo := NewCommentRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Comment{ID: "c1", PostID: "p1", Votes: 0}))

	updated, err := repo.Update(ctx, "p1", "c1", func(c *models.Comment) error {
		c.Votes, c.Voters = models.ApplyVote(c.Votes, c.Voters, "alice", models.VoteUp)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Votes)
	require.Len(t, updated.Voters, 1)
	assert.Equal(t, "alice", updated.Voters[0].Username)
}
