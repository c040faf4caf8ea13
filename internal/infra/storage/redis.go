package storage

import (
	"context"
	"errors"

	"swap_go/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists ledger state in Redis. Values have no TTL: the
// ledger is authoritative state, not a cache.
type RedisStore struct {
	client *redis.Client
}

var _ domain.KeyValueStore = (*RedisStore)(nil)

// NewRedisStore creates a store over an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping checks the connection to the Redis server.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get retrieves a value by key. Absence is not an error.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set writes a value. Returns nil only after Redis acknowledged it.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}
