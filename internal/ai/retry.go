package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jnovak/budget-categorizer/internal/logging"
)

// WithRetry runs fn, retrying with exponential backoff only when fn reports
// a rate limit. Any other error is final: retrying a malformed request or an
// auth failure just burns quota. Backoff doubles per attempt starting from
// baseDelay.
func WithRetry(ctx context.Context, maxRetries int, baseDelay time.Duration, logger logging.Logger, fn func() error) error {
	if logger == nil {
		logger = logging.GetLogger()
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseDelay * time.Duration(1<<(attempt-1))
			logger.WithFields(
				logging.Field{Key: "attempt", Value: attempt},
				logging.Field{Key: "delay", Value: delay.String()},
			).Debug("Rate limited, backing off before retry")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrRateLimited) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrMaxRetries, maxRetries+1, lastErr)
}
