package ratelimit

import (
	"context"

	"github.com/pobimgroup/election-dashboard/internal/domain"
)

// Noop is the strategy used when rate limiting is switched off via config.
type Noop struct{}

func NewNoop() Noop {
	return Noop{}
}

func (Noop) Allow(ctx context.Context, key string) error {
	return nil
}

var _ domain.RateLimiter = Noop{}
