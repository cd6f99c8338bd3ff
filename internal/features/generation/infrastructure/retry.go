package infrastructure

import (
	"context"
	"time"

	"viralcopy/backend/internal/platform/logger"
)

// withRetry runs fn up to maxAttempts times, sleeping baseDelay * 2^attempt
// between attempts. It returns the first successful value or the last error
// once attempts are exhausted. Retry state is local to the call, so
// concurrent requests never observe each other's counters. The sleep
// function is a parameter so tests can record delays instead of waiting.
func withRetry(ctx context.Context, maxAttempts int, baseDelay time.Duration, sleep func(time.Duration), log *logger.Logger, fn func() (string, error)) (string, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := fn()
		if err == nil {
			return text, nil
		}
		lastErr = err
		log.Warn("generation API call failed",
			"attempt", attempt+1,
			"max_attempts", maxAttempts,
			"error", err,
		)

		if attempt < maxAttempts-1 {
			sleep(baseDelay * (1 << attempt))
		}
	}
	return "", lastErr
}
