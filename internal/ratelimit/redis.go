package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by a shared Redis instance, for running
// multiple gateway replicas behind one quota. The window is enforced by
// key expiry: the first increment in a window sets the TTL, so the
// counter disappears when the window elapses.
type RedisStore struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedisStore creates a Redis-backed store with the given quota.
func NewRedisStore(client *redis.Client, limit int, window time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
	}
}

// Allow implements Store. INCR is atomic on the server, so concurrent
// replicas never double-admit the final slot.
func (s *RedisStore) Allow(ctx context.Context, key string) (Result, error) {
	redisKey := s.prefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	// go-redis v9 has no PExpireNX helper; issue PEXPIRE ... NX directly.
	pipe.Do(ctx, "pexpire", redisKey, s.window.Milliseconds(), "nx")
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("redis rate limit check: %w", err)
	}

	count := int(incr.Val())
	remaining := s.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= s.limit,
		Limit:     s.limit,
		Remaining: remaining,
		ResetAt:   time.Now().Add(ttl.Val()),
	}, nil
}
