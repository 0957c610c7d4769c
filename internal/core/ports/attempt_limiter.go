package ports

import "context"

// AttemptLimiter counts attempts per key inside a fixed window.
type AttemptLimiter interface {
	// Allow registers an attempt for key and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)

	// Limit returns the number of attempts allowed per window.
	Limit() int64
}
