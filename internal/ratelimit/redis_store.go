package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one sorted set per client key, scored by unix
// milliseconds. Expired members are pruned on write so a
// chronically-active address does not grow its log unboundedly.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func logKey(key string) string {
	return "submission_logs:" + key
}

func (s *RedisStore) Count(ctx context.Context, key string, since time.Time) (int64, error) {
	// Exclusive lower bound: age == window counts as expired.
	minScore := fmt.Sprintf("(%d", since.UnixMilli())
	count, err := s.client.ZCount(ctx, logKey(key), minScore, "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return count, nil
}

func (s *RedisStore) Append(ctx context.Context, key string, at time.Time, window time.Duration) error {
	k := logKey(key)
	cutoff := at.Add(-window)

	// Members carry a uuid suffix so same-instant submissions remain
	// distinct entries.
	member := fmt.Sprintf("%d-%s", at.UnixMilli(), uuid.New())

	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, k, redis.Z{Score: float64(at.UnixMilli()), Member: member})
	pipe.ZRemRangeByScore(ctx, k, "-inf", fmt.Sprintf("%d", cutoff.UnixMilli()))
	pipe.Expire(ctx, k, window*2)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append submission: %w", err)
	}
	return nil
}
