package server

import (
	"net/http"
	"testing"

	"banterhall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardFlow(t *testing.T) {
	s, app := newTestServer(t)
	aliceToken := seedUser(t, s, "alice", 10, false)
	bobToken := seedUser(t, s, "bob", 10, false)

	var post models.Post
	resp := doJSON(t, app, http.MethodPost, "/api/posts", aliceToken,
		map[string]string{"content": "banter incoming"}, &post)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, post.ID)

	var voted models.Post
	resp = doJSON(t, app, http.MethodPost, "/api/posts/"+post.ID+"/vote", bobToken,
		map[string]string{"direction": "up"}, &voted)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, voted.Votes)

	var comment models.Comment
	resp = doJSON(t, app, http.MethodPost, "/api/posts/"+post.ID+"/comments", bobToken,
		map[string]string{"content": "counterpoint"}, &comment)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var comments []models.Comment
	resp = doJSON(t, app, http.MethodGet, "/api/posts/"+post.ID+"/comments", aliceToken, nil, &comments)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, comments, 1)

	var posts []models.Post
	resp = doJSON(t, app, http.MethodGet, "/api/posts", aliceToken, nil, &posts)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, posts, 1)
	assert.Equal(t, 1, posts[0].Votes)
}

func TestDeletePostAuthorization(t *testing.T) {
	s, app := newTestServer(t)
	aliceToken := seedUser(t, s, "alice", 10, false)
	malloryToken := seedUser(t, s, "mallory", 10, false)
	adminToken := seedUser(t, s, "root", 999999, true)

	var post models.Post
	doJSON(t, app, http.MethodPost, "/api/posts", aliceToken,
		map[string]string{"content": "mine"}, &post)

	resp := doJSON(t, app, http.MethodDelete, "/api/posts/"+post.ID, malloryToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/posts/"+post.ID, adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/posts/"+post.ID, aliceToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "already gone")
}

func TestVoteValidation(t *testing.T) {
	s, app := newTestServer(t)
	token := seedUser(t, s, "alice", 10, false)

	var post models.Post
	doJSON(t, app, http.MethodPost, "/api/posts", token,
		map[string]string{"content": "vote here"}, &post)

	resp := doJSON(t, app, http.MethodPost, "/api/posts/"+post.ID+"/vote", token,
		map[string]string{"direction": "sideways"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/posts/missing/vote", token,
		map[string]string{"direction": "up"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
