package gateway

import (
	"context"
	"time"
)

// BackoffFunc maps a failed attempt number (1-based) to the wait before the
// next attempt.
type BackoffFunc func(attempt int) time.Duration

// LinearBackoff waits attempt × step.
func LinearBackoff(step time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			return 0
		}
		return time.Duration(attempt) * step
	}
}

type RetryPolicy struct {
	MaxAttempts int
	Backoff     BackoffFunc
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff:     LinearBackoff(2 * time.Second),
	}
}

// Delay returns the pause after the given failed attempt, or zero when no
// further attempt will be made.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if p.Backoff == nil || attempt >= p.attempts() {
		return 0
	}
	return p.Backoff(attempt)
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Sleeper pauses between attempts. Tests swap in a recording fake.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type SleeperFunc func(ctx context.Context, d time.Duration) error

func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

type timerSleeper struct{}

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var RealSleeper Sleeper = timerSleeper{}
