// Package ratelimit provides fixed-window attempt counters. Windows
// do not slide: the expiry is set when a counter is first created and
// the whole counter decays at once.
package ratelimit

import (
	"context"
	"time"
)

type Limiter interface {
	// TooManyAttempts reports whether the counter for key has reached max.
	TooManyAttempts(ctx context.Context, key string, max int) (bool, error)
	// Hit increments the counter for key, starting a decay window if
	// the counter did not exist yet.
	Hit(ctx context.Context, key string, window time.Duration) error
	// Clear removes the counter for key.
	Clear(ctx context.Context, key string) error
}
