package utils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RetryWithBackoff runs fn up to attempts times with quadratic backoff
// between tries; deadline expiries are never retried
func RetryWithBackoff(attempts int, fn func() error, logger *Logger) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * time.Second
			logger.Warn("Retrying (attempt %d/%d) after %v...", attempt+1, attempts, backoff)
			time.Sleep(backoff)
		}
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return err
		}
		logger.Error("Attempt %d failed: %v", attempt+1, err)
	}
	return fmt.Errorf("all %d attempts failed, last error: %w", attempts, lastErr)
}
