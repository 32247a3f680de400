// Package ratelimit throttles repeated cast attempts per caller (fixed
// window on Redis, with a noop fallback when disabled).
package ratelimit

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pobimgroup/election-dashboard/internal/domain"
)

var ErrRateLimitExceeded = fmt.Errorf("rate limit exceeded")

// RedisLimiter counts attempts per hashed key in fixed windows.
type RedisLimiter struct {
	client    *redis.Client
	limit     int
	window    time.Duration
	keyPrefix string
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisLimiter{
		client:    client,
		limit:     limit,
		window:    window,
		keyPrefix: prefix,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) error {
	if r.client == nil || r.limit <= 0 || r.window <= 0 {
		// Invalid configuration falls through to permissive mode.
		return nil
	}

	redisKey := r.buildKey(key)
	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return fmt.Errorf("ratelimit: increment: %w", err)
	}

	if count == 1 {
		if err := r.client.Expire(ctx, redisKey, r.window).Err(); err != nil {
			return fmt.Errorf("ratelimit: set expiry: %w", err)
		}
	}

	if int(count) > r.limit {
		return ErrRateLimitExceeded
	}

	return nil
}

func (r *RedisLimiter) buildKey(key string) string {
	// SHA-1 keeps citizen identifiers out of Redis key space.
	hash := sha1.Sum([]byte(key))
	return fmt.Sprintf("%s:%s", r.keyPrefix, hex.EncodeToString(hash[:]))
}

var _ domain.RateLimiter = (*RedisLimiter)(nil)
