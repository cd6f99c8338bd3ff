package infrastructure

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viralcopy/backend/internal/platform/logger"
)

func TestWithRetryExhaustsAttempts(t *testing.T) {
	var delays []time.Duration
	sleep := func(d time.Duration) { delays = append(delays, d) }

	calls := 0
	lastErr := fmt.Errorf("boom 3")
	_, err := withRetry(context.Background(), 3, 100*time.Millisecond, sleep, logger.NewNop(), func() (string, error) {
		calls++
		return "", fmt.Errorf("boom %d", calls)
	})

	require.Error(t, err)
	assert.Equal(t, lastErr.Error(), err.Error())
	assert.Equal(t, 3, calls)
	// Delays double per attempt; no sleep after the final attempt.
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, delays)
}

func TestWithRetrySucceedsMidway(t *testing.T) {
	var delays []time.Duration
	sleep := func(d time.Duration) { delays = append(delays, d) }

	calls := 0
	text, err := withRetry(context.Background(), 3, 100*time.Millisecond, sleep, logger.NewNop(), func() (string, error) {
		calls++
		if calls < 2 {
			return "", fmt.Errorf("transient")
		}
		return "결과", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "결과", text)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, delays)
}

func TestWithRetryFirstAttemptSucceeds(t *testing.T) {
	var delays []time.Duration
	text, err := withRetry(context.Background(), 3, time.Second, func(d time.Duration) { delays = append(delays, d) }, logger.NewNop(), func() (string, error) {
		return "즉시", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "즉시", text)
	assert.Empty(t, delays)
}

func TestWithRetryCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := withRetry(ctx, 3, time.Millisecond, func(time.Duration) {}, logger.NewNop(), func() (string, error) {
		calls++
		return "", fmt.Errorf("never retried")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestWithRetryClampsAttempts(t *testing.T) {
	calls := 0
	_, err := withRetry(context.Background(), 0, time.Millisecond, func(time.Duration) {}, logger.NewNop(), func() (string, error) {
		calls++
		return "", fmt.Errorf("boom")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
