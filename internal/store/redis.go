// Package store implements the flat string-keyed record store backing all
// application state. Records are JSON documents in Redis; the store exposes
// get/set/delete/prefix-scan plus an atomic read-modify-write primitive.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"banterhall/internal/observability"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a key has no record.
var ErrNotFound = errors.New("store: key not found")

// updateRetries bounds the optimistic-transaction retry loop in Update.
const updateRetries = 16

// Store is the persistence contract every repository depends on.
type Store interface {
	Get(ctx context.Context, key string, into any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	GetByPrefix(ctx context.Context, prefix string) ([][]byte, error)
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
	Ping(ctx context.Context) error
	Close() error
}

type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) && !errors.Is(err, redis.TxFailedErr) {
			observability.RedisErrorRate.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) && !errors.Is(err, redis.TxFailedErr) {
			observability.RedisErrorRate.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// RedisStore is the Redis-backed Store implementation.
type RedisStore struct {
	client *redis.Client
}

// Connect opens a Redis connection for the given address. The address may be
// a bare host:port or a redis:// URL.
func Connect(addr string) (*RedisStore, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL %q: %w", addr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	client.AddHook(metricsHook{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// NewWithClient wraps an existing client. Used by tests running against
// miniredis.
func NewWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get unmarshals the record at key into the provided value.
func (s *RedisStore) Get(ctx context.Context, key string, into any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, into)
}

// Set stores value as a JSON document. A zero ttl means no expiry.
func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// SetNX stores value only if the key does not already exist. Returns false
// without writing when the key is taken.
func (s *RedisStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	return s.client.SetNX(ctx, key, data, ttl).Result()
}

// Delete removes the given keys. Missing keys are not an error.
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// GetByPrefix returns the raw JSON documents of every record whose key starts
// with prefix.
func (s *RedisStore) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	docs := make([][]byte, 0, len(values))
	for _, v := range values {
		// Keys can vanish between SCAN and MGET.
		if v == nil {
			continue
		}
		if str, ok := v.(string); ok {
			docs = append(docs, []byte(str))
		}
	}
	return docs, nil
}

// Update performs an atomic read-modify-write on key using an optimistic
// WATCH transaction. fn receives the current document (nil when the key is
// absent) and returns the replacement; an error from fn aborts the update and
// is returned unchanged. Concurrent writers on the same key are retried.
func (s *RedisStore) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			current = nil
		} else if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, redis.KeepTTL)
			return nil
		})
		return err
	}

	for i := 0; i < updateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("update of %s retried %d times without success", key, updateRetries)
}

// Client exposes the underlying Redis client for callers that need raw
// commands, such as the rate limiter.
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

// Ping reports store health.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
