package cache

import (
	"context"
	"errors"
	"time"
)

// RetryAttempts is the number of attempts made by [RetryWithBackoff].
const RetryAttempts = 3

// RetryableError wraps an error to indicate it should trigger a retry.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable checks if an error is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Retry executes fn up to attempts times, doubling delay after each failure.
// Only errors wrapped with [Retryable] are retried; other errors are returned
// immediately. Returns ctx.Err() if the context is cancelled while waiting.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff retries fn up to [RetryAttempts] times starting with a one
// second delay.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, RetryAttempts, time.Second, fn)
}

// RetryUpTo is [RetryWithBackoff] with the attempt count capped at limit.
// fn is always called at least once.
func RetryUpTo(ctx context.Context, limit int, fn func() error) error {
	return Retry(ctx, min(max(limit, 1), RetryAttempts), time.Second, fn)
}
