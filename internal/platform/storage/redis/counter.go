package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pobimgroup/election-dashboard/internal/domain"
)

// Counter provides increment/read operations over prefixed keys. It backs
// the cheap per-election cast totals used by stream heartbeats; the vote
// ledger in Postgres remains authoritative.
type Counter struct {
	client *redis.Client
	prefix string
}

func NewCounter(client *redis.Client, prefix string) *Counter {
	return &Counter{
		client: client,
		prefix: prefix,
	}
}

func (c *Counter) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	return c.client.IncrBy(ctx, c.key(key), delta).Result()
}

func (c *Counter) Get(ctx context.Context, key string) (int64, error) {
	val, err := c.client.Get(ctx, c.key(key)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}

func (c *Counter) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return fmt.Sprintf("%s:%s", c.prefix, k)
}

// CastTotalKey is the counter key for the running cast total of an election.
func CastTotalKey(id domain.ElectionID) string {
	return fmt.Sprintf("election:%s:votes", id)
}

var _ domain.Counter = (*Counter)(nil)
