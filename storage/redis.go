package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/lernovate/admin-api/utils/cache"
)

// RedisStore keeps each collection as a single Redis string value. Useful when
// several instances should share one dataset; the last writer still wins on
// the whole blob.
type RedisStore struct {
	cache  *cache.RedisCache
	prefix string
}

// NewRedisStore connects to Redis and returns a store. Collections are keyed
// as "<prefix>:<collection>".
func NewRedisStore(redisURL, prefix string) (*RedisStore, error) {
	c, err := cache.NewRedisCache(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis store: %w", err)
	}
	if prefix == "" {
		prefix = "lernovate"
	}
	return &RedisStore{cache: c, prefix: prefix}, nil
}

func (s *RedisStore) key(collection string) string {
	return s.prefix + ":" + collection
}

// Load reads the collection blob, or ErrNotInitialized if it was never saved.
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := s.cache.Get(ctx, s.key(key))
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return []byte(val), nil
}

// Save overwrites the collection blob. No expiry: the blob is durable state,
// not a cache entry.
func (s *RedisStore) Save(ctx context.Context, key string, blob []byte) error {
	if err := s.cache.Set(ctx, s.key(key), blob, 0); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.cache.Close()
}
