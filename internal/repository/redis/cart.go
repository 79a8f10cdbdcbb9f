package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CartStorage keeps serialized carts in Redis. Every write refreshes the TTL,
// so an untouched cart expires ttl after its last change.
type CartStorage struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCartStorage creates a Redis-backed cart storage.
func NewCartStorage(client redis.Cmdable, ttl time.Duration) *CartStorage {
	return &CartStorage{client: client, ttl: ttl}
}

// GetItem returns the value at key, or found=false when it does not exist.
func (s *CartStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// SetItem stores value at key with the configured TTL.
func (s *CartStorage) SetItem(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key. Deleting a missing key is not an error.
func (s *CartStorage) RemoveItem(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
