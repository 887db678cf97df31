package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/hubfare/internal/ratelimit"
)

func TestWait_AllowsBurst(t *testing.T) {
	l := ratelimit.NewProviderLimiter(ratelimit.Config{RequestsPerSecond: 1, BurstSize: 3})

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(context.Background(), "static"))
	}
}

func TestWait_HonoursContextDeadline(t *testing.T) {
	l := ratelimit.NewProviderLimiter(ratelimit.Config{RequestsPerSecond: 0.1, BurstSize: 1})
	require.NoError(t, l.Wait(context.Background(), "static"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := l.Wait(ctx, "static")

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "static")
}

func TestWait_CancelledContext(t *testing.T) {
	l := ratelimit.NewProviderLimiter(ratelimit.Config{RequestsPerSecond: 0.1, BurstSize: 1})
	require.NoError(t, l.Wait(context.Background(), "static"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, l.Wait(ctx, "static"), context.Canceled)
}

func TestWait_ProvidersHaveSeparateBuckets(t *testing.T) {
	l := ratelimit.NewProviderLimiter(ratelimit.Config{RequestsPerSecond: 0.1, BurstSize: 1})
	require.NoError(t, l.Wait(context.Background(), "static"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.NoError(t, l.Wait(ctx, "fareapi"))
}

func TestNewProviderLimiter_FillsDefaults(t *testing.T) {
	l := ratelimit.NewProviderLimiter(ratelimit.Config{})

	for i := 0; i < ratelimit.DefaultConfig().BurstSize; i++ {
		require.NoError(t, l.Wait(context.Background(), "static"))
	}
}
