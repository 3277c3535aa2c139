package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxAttempts = 3
	DefaultInterval    = 500 * time.Millisecond
)

type Operation func() error

type ExponentialConfig struct {
	InitialInterval time.Duration
	MaxElapsedTime  time.Duration
	// MaxAttempts caps the number of calls; 0 means no cap.
	MaxAttempts int
	// Context stops retrying once done.
	Context context.Context
	OnRetry func(error, time.Duration)
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

func Exponential(fn Operation, cfg ExponentialConfig) error {
	if cfg.InitialInterval <= 0 {
		return errors.New("initial interval must be > 0")
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = cfg.InitialInterval
	if cfg.MaxElapsedTime > 0 {
		exp.MaxElapsedTime = cfg.MaxElapsedTime
	}

	var bo backoff.BackOff = exp
	if cfg.MaxAttempts > 0 {
		bo = backoff.WithMaxRetries(bo, uint64(cfg.MaxAttempts-1))
	}
	if cfg.Context != nil {
		bo = backoff.WithContext(bo, cfg.Context)
	}

	return backoff.RetryNotify(backoff.Operation(fn), bo, func(err error, next time.Duration) {
		if cfg.OnRetry != nil {
			cfg.OnRetry(err, next)
		}
	})
}

// Constant calls fn up to attempts times, sleeping interval in between.
func Constant(ctx context.Context, fn Operation, interval time.Duration, attempts int) error {
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("stopped after %d attempts: %w", i, errors.Join(ctx.Err(), err))
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
