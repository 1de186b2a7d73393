package httputil

import (
	"context"
	"time"

	"github.com/matzehuels/cardspace/pkg/errors"
)

// Defaults for [RetryWithBackoff].
const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second
)

// Retry calls fn until it succeeds, fails with a permanent error or has
// been called attempts times, sleeping delay before the second call and
// doubling it after each failure.
//
// Only NETWORK_ERROR failures are retried; [Fetch] reports dropped
// connections, 5xx responses and 429 rate limits with that code. The last
// error is returned once attempts run out, and ctx.Err() if ctx ends
// during a wait.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !retryable(err) || attempt >= attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// RetryWithBackoff retries fn with [DefaultAttempts] and [DefaultDelay].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, DefaultAttempts, DefaultDelay, fn)
}

func retryable(err error) bool {
	return errors.Is(err, errors.ErrCodeNetwork)
}
