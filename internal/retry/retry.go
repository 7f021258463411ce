// Package retry provides a bounded retry combinator.
package retry

import (
	"context"
	"time"

	"daqa/internal/config"
)

// Retryable decides whether an error is worth another attempt.
type Retryable func(error) bool

// Any retries every non-nil error.
func Any(error) bool {
	return true
}

// Do runs fn up to policy.MaxAttempts times, sleeping the policy delay
// between attempts, until fn succeeds, the error is not retryable, or
// the context is cancelled. The last error is returned on exhaustion.
func Do(ctx context.Context, policy *config.RetryPolicy, retryable Retryable, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !retryable(lastErr) {
			return lastErr
		}

		if attempt < policy.MaxAttempts {
			delay := policy.GetRetryDelay(attempt + 1)
			if delay > 0 {
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}

	return lastErr
}
