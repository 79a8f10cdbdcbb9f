package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "processed:"

// IdempotencyStore records processed event ids in Redis so that every
// replica of a consumer group sees the same history.
type IdempotencyStore struct {
	client redis.Cmdable
	scope  string
	ttl    time.Duration
}

// NewIdempotencyStore scopes ids by scope, usually the consumer group.
func NewIdempotencyStore(client redis.Cmdable, scope string, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, scope: scope, ttl: ttl}
}

func (s *IdempotencyStore) key(eventID string) string {
	return idempotencyKeyPrefix + s.scope + ":" + eventID
}

func (s *IdempotencyStore) Contains(ctx context.Context, eventID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (s *IdempotencyStore) Add(ctx context.Context, eventID string) error {
	if err := s.client.Set(ctx, s.key(eventID), time.Now().UTC().Format(time.RFC3339), s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
