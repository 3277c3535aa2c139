package ratelimiter

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter wraps golang.org/x/time/rate.Limiter with an interval based
// constructor.
type RateLimiter struct {
	limiter  *rate.Limiter
	interval time.Duration
	burst    int
}

// NewRateLimiter allows one event per interval with up to burst saved up.
func NewRateLimiter(interval time.Duration, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &RateLimiter{
		limiter:  rate.NewLimiter(limit, burst),
		interval: interval,
		burst:    burst,
	}
}

// Wait blocks until a token is available or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}

// TryAcquire takes a token if one is available without blocking.
func (rl *RateLimiter) TryAcquire() bool {
	return rl.limiter.Allow()
}

func (rl *RateLimiter) Interval() time.Duration {
	return rl.interval
}

func (rl *RateLimiter) Burst() int {
	return rl.burst
}
