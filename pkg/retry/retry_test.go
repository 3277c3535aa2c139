package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponential_SuccessImmediate(t *testing.T) {
	err := Exponential(func() error { return nil }, ExponentialConfig{
		InitialInterval: 5 * time.Millisecond,
		MaxElapsedTime:  100 * time.Millisecond,
	})
	assert.NoError(t, err)
}

func TestExponential_RetryThenSuccess(t *testing.T) {
	var calls int
	var onRetryCount int

	err := Exponential(func() error {
		if calls < 3 {
			calls++
			return errors.New("temporary error")
		}
		return nil
	}, ExponentialConfig{
		InitialInterval: 2 * time.Millisecond,
		MaxElapsedTime:  time.Second,
		OnRetry: func(err error, next time.Duration) {
			onRetryCount++
			assert.Error(t, err)
			assert.Greater(t, next, time.Duration(0))
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, onRetryCount)
}

func TestExponential_MaxAttempts(t *testing.T) {
	var calls int
	err := Exponential(func() error {
		calls++
		return errors.New("always")
	}, ExponentialConfig{
		InitialInterval: time.Millisecond,
		MaxAttempts:     4,
	})
	assert.Error(t, err)
	assert.Equal(t, 4, calls)
}

func TestExponential_PermanentStopsAtOnce(t *testing.T) {
	var calls int
	sentinel := errors.New("bad payload")
	err := Exponential(func() error {
		calls++
		return Permanent(sentinel)
	}, ExponentialConfig{InitialInterval: time.Millisecond, MaxAttempts: 5})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestExponential_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int
	err := Exponential(func() error {
		calls++
		return errors.New("fail")
	}, ExponentialConfig{InitialInterval: time.Millisecond, Context: ctx})
	assert.Error(t, err)
	assert.LessOrEqual(t, calls, 1)
}

func TestExponential_InvalidConfig(t *testing.T) {
	err := Exponential(func() error { return nil }, ExponentialConfig{})
	assert.Error(t, err)
}

func TestExponential_ExhaustedByTime(t *testing.T) {
	err := Exponential(func() error { return errors.New("always fail") }, ExponentialConfig{
		InitialInterval: 5 * time.Millisecond,
		MaxElapsedTime:  15 * time.Millisecond,
	})
	assert.Error(t, err)
}

func TestConstant_SuccessImmediate(t *testing.T) {
	err := Constant(context.Background(), func() error { return nil }, 10*time.Millisecond, 3)
	assert.NoError(t, err)
}

func TestConstant_RetryExactlyNThenFail(t *testing.T) {
	var calls int
	err := Constant(context.Background(), func() error {
		calls++
		return errors.New("fail")
	}, 2*time.Millisecond, 3)

	assert.ErrorContains(t, err, "failed after 3 attempts")
	assert.Equal(t, 3, calls)
}

func TestConstant_AttemptsNonPositiveMeansOneAttempt(t *testing.T) {
	var calls int
	err := Constant(context.Background(), func() error {
		calls++
		return errors.New("fail once")
	}, time.Millisecond, 0)

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestConstant_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls int
	err := Constant(ctx, func() error {
		calls++
		cancel()
		return errors.New("fail")
	}, time.Hour, 5)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
