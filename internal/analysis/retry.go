package analysis

import (
	"context"
	"fmt"
	"time"
)

// retry calls fn up to attempts times, waiting a linearly growing delay
// between failures. It gives up early when ctx is done.
func retry[T any](ctx context.Context, attempts int, delay time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}

		wait := delay * time.Duration(i+1)
		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("after %d attempts: %w", i+1, lastErr)
		case <-time.After(wait):
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
