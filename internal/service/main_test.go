package service

import (
	"context"
	"testing"
	"time"

	"banterhall/internal/models"
	"banterhall/internal/repository"
	"banterhall/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// testEnv bundles miniredis-backed repositories for service tests.
type testEnv struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	games    repository.GameRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	feedback repository.FeedbackRepository
	messages repository.MessageRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := store.NewWithClient(rdb)
	return &testEnv{
		users:    repository.NewUserRepository(s),
		sessions: repository.NewSessionRepository(s),
		games:    repository.NewGameRepository(s),
		posts:    repository.NewPostRepository(s),
		comments: repository.NewCommentRepository(s),
		feedback: repository.NewFeedbackRepository(s),
		messages: repository.NewMessageRepository(s),
	}
}

// seedUser inserts a user with the given balance, skipping the signup flow.
func (e *testEnv) seedUser(t *testing.T, username string, balance int, isAdmin bool) {
	t.Helper()
	require.NoError(t, e.users.Create(context.Background(), &models.User{
		Username:  username,
		Password:  "not-a-real-hash",
		Balance:   balance,
		IsAdmin:   isAdmin,
		CreatedAt: time.Now().UTC(),
	}))
}

func (e *testEnv) balance(t *testing.T, username string) int {
	t.Helper()
	user, err := e.users.Get(context.Background(), username)
	require.NoError(t, err)
	return user.Balance
}

// assertErrCode asserts that err carries the given application error code.
func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
}
