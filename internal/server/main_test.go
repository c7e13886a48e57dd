package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"banterhall/internal/config"
	"banterhall/internal/models"
	"banterhall/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newTestServer builds a Server over miniredis with routes registered on a
// bare Fiber app.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		Port:          "0",
		RedisURL:      mr.Addr(),
		Env:           "test",
		AdminUsername: "root",
		AdminPassword: "drchuck",
	}

	s := NewServerWithDeps(cfg, store.NewWithClient(rdb), rdb)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// seedUser inserts a user directly and opens a session for it, returning the
// session token.
func seedUser(t *testing.T, s *Server, username string, balance int, isAdmin bool) string {
	t.Helper()
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, s.userRepo.Create(ctx, &models.User{
		Username:  username,
		Password:  string(hashed),
		Balance:   balance,
		IsAdmin:   isAdmin,
		CreatedAt: time.Now().UTC(),
	}))

	token := "test-token-" + username
	require.NoError(t, s.sessionRepo.Create(ctx, &models.Session{
		Token:     token,
		Username:  username,
		LoginTime: time.Now().UTC(),
	}, 0))
	return token
}

// newBearerRequest builds a request authenticated via the Authorization
// header instead of the custom one.
func newBearerRequest(method, path, token string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// doJSON issues a request with an optional JSON body and session token, and
// decodes the JSON response into out when out is non-nil.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("X-Session-Token", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}
