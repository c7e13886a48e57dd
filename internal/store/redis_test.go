package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RedisStore {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewWithClient(rdb)
}

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStore_SetGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "doc:1", testDoc{Name: "alpha", Count: 3}, 0))

	var got testDoc
	require.NoError(t, s.Get(ctx, "doc:1", &got))
	assert.Equal(t, "alpha", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestStore_GetMissingKey(t *testing.T) {
	s := newTestStore(t)

	var got testDoc
	err := s.Get(context.Background(), "doc:missing", &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_SetNX(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.SetNX(ctx, "doc:1", testDoc{Name: "first"}, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.SetNX(ctx, "doc:1", testDoc{Name: "second"}, 0)
	require.NoError(t, err)
	assert.False(t, ok, "second SetNX on the same key must not write")

	var got testDoc
	require.NoError(t, s.Get(ctx, "doc:1", &got))
	assert.Equal(t, "first", got.Name)
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "doc:1", testDoc{Name: "alpha"}, 0))
	require.NoError(t, s.Delete(ctx, "doc:1"))

	var got testDoc
	assert.ErrorIs(t, s.Get(ctx, "doc:1", &got), ErrNotFound)

	// Deleting an absent key is fine
	assert.NoError(t, s.Delete(ctx, "doc:1"))
	assert.NoError(t, s.Delete(ctx))
}

func TestStore_GetByPrefix(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "doc:1", testDoc{Name: "one"}, 0))
	require.NoError(t, s.Set(ctx, "doc:2", testDoc{Name: "two"}, 0))
	require.NoError(t, s.Set(ctx, "other:1", testDoc{Name: "三"}, 0))

	docs, err := s.GetByPrefix(ctx, "doc:")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	names := map[string]bool{}
	for _, raw := range docs {
		var d testDoc
		require.NoError(t, json.Unmarshal(raw, &d))
		names[d.Name] = true
	}
	assert.True(t, names["one"])
	assert.True(t, names["two"])

	empty, err := s.GetByPrefix(ctx, "nothing:")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_Update(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "doc:1", testDoc{Name: "alpha", Count: 1}, 0))

	err := s.Update(ctx, "doc:1", func(current []byte) ([]byte, error) {
		var d testDoc
		require.NoError(t, json.Unmarshal(current, &d))
		d.Count++
		return json.Marshal(d)
	})
	require.NoError(t, err)

	var got testDoc
	require.NoError(t, s.Get(ctx, "doc:1", &got))
	assert.Equal(t, 2, got.Count)
}

func TestStore_UpdateMissingKeyPassesNil(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Update(ctx, "doc:new", func(current []byte) ([]byte, error) {
		assert.Nil(t, current)
		return json.Marshal(testDoc{Name: "created"})
	})
	require.NoError(t, err)

	var got testDoc
	require.NoError(t, s.Get(ctx, "doc:new", &got))
	assert.Equal(t, "created", got.Name)
}

func TestStore_UpdateAbortsOnFnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "doc:1", testDoc{Name: "alpha", Count: 1}, 0))

	sentinel := errors.New("rejected")
	err := s.Update(ctx, "doc:1", func(current []byte) ([]byte, error) {
		return nil, sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	var got testDoc
	require.NoError(t, s.Get(ctx, "doc:1", &got))
	assert.Equal(t, 1, got.Count, "aborted update must not write")
}
