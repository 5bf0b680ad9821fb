package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Policy describes how a fallible operation is re-executed. The zero value
// gets the defaults below. Apply a policy only to operations whose
// repetition is safe.
type Policy struct {
	Attempts int           // maximum executions, default 3
	Backoff  time.Duration // fixed wait between attempts, default 2s
	Jitter   time.Duration // optional random extra wait in [0, Jitter)
	// Retryable decides whether a failure is transient. A nil predicate
	// retries every failure.
	Retryable func(error) bool
}

const (
	defaultAttempts = 3
	defaultBackoff  = 2 * time.Second
)

// Do executes op up to p.Attempts times, waiting p.Backoff (plus jitter)
// between attempts. Context cancellation stops the wait immediately. After
// exhausting attempts the last failure is surfaced wrapped with the attempt
// count.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	backoff := p.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}
		wait := backoff
		if p.Jitter > 0 {
			wait += time.Duration(rand.Int63n(int64(p.Jitter)))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("operation failed after %d attempts: %w", attempts, lastErr)
}
