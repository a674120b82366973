package ports

import (
	"context"
	"time"
)

// LoginLimiter throttles repeated failed logins for a key (client IP + email).
type LoginLimiter interface {
	// Allow reports whether another attempt is permitted and, if not, how long to wait.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
