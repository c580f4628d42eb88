// Package ratelimit provides a sliding-window request counter keyed by
// an arbitrary client key (the HTTP layer uses the remote IP). The
// counter store is injected so single-instance deployments can run on
// an in-process map while horizontally-scaled ones share a Redis
// backend.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one rate check.
type Decision struct {
	Allowed bool
	// RetryAfter is how long the caller should wait before retrying.
	// Only meaningful when Allowed is false.
	RetryAfter time.Duration
}

type Limiter interface {
	// Allow records the request and reports whether it fits inside the
	// window. Requests at the window boundary can briefly double the
	// effective rate; that imprecision is accepted.
	Allow(ctx context.Context, key string) (Decision, error)
}
