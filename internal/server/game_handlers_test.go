package server

import (
	"net/http"
	"testing"

	"banterhall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameLobbyFlow(t *testing.T) {
	s, app := newTestServer(t)
	hostToken := seedUser(t, s, "alice", 10, false)
	joinToken := seedUser(t, s, "bob", 10, false)

	var game models.Game
	resp := doJSON(t, app, http.MethodPost, "/api/games", hostToken, map[string]any{
		"name":     "showdown",
		"gameType": "Blackjack",
		"stake":    "5",
	}, &game)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "waiting", game.Status)
	assert.Equal(t, 2, game.MaxPlayers)
	require.NotEmpty(t, game.ID)

	// Host's stake is escrowed
	var balance struct {
		Balance int `json:"balance"`
	}
	doJSON(t, app, http.MethodGet, "/api/balance", hostToken, nil, &balance)
	assert.Equal(t, 5, balance.Balance)

	var joined models.Game
	resp = doJSON(t, app, http.MethodPost, "/api/games/"+game.ID+"/join", joinToken, nil, &joined)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "in-progress", joined.Status)
	assert.Equal(t, 2, joined.CurrentPlayers)

	var games []models.Game
	resp = doJSON(t, app, http.MethodGet, "/api/games", hostToken, nil, &games)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, games, 1)
}

func TestCreateGameValidation(t *testing.T) {
	s, app := newTestServer(t)
	token := seedUser(t, s, "alice", 10, false)

	resp := doJSON(t, app, http.MethodPost, "/api/games", token, map[string]any{
		"gameType": "Blackjack",
		"stake":    "5",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "name required")

	resp = doJSON(t, app, http.MethodPost, "/api/games", token, map[string]any{
		"name":     "broke",
		"gameType": "Casino War",
		"stake":    "500",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "stake beyond balance")
}

func TestJoinGameRejections(t *testing.T) {
	s, app := newTestServer(t)
	hostToken := seedUser(t, s, "alice", 10, false)

	var game models.Game
	doJSON(t, app, http.MethodPost, "/api/games", hostToken, map[string]any{
		"name":     "solo",
		"gameType": "Roshambo",
		"stake":    "Fun",
	}, &game)

	resp := doJSON(t, app, http.MethodPost, "/api/games/"+game.ID+"/join", hostToken, nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "host cannot join own game")

	resp = doJSON(t, app, http.MethodPost, "/api/games/missing/join", hostToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
