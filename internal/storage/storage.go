package storage

import (
	"context"
	"time"
)

type RateLimitResult struct {
	Allowed bool
	// RetryAfter is how long the caller should wait before the next attempt.
	// Zero when Allowed.
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateLimitResult, error)
}

type Backend interface {
	RateLimiter

	Close() error

	Ping(ctx context.Context) error
}
