package port

import (
	"context"
	"time"
)

// RateLimitStore tracks timestamped attempts per identifier inside a sliding
// window. Identifiers are opaque to the store; the auth flow keys them by
// lowercased email.
type RateLimitStore interface {
	// RecordAttempt appends one attempt at the given instant.
	RecordAttempt(ctx context.Context, identifier string, at time.Time) error
	// CountAttempts reports how many attempts fall inside the window ending
	// at reference.
	CountAttempts(ctx context.Context, identifier string, window time.Duration, reference time.Time) (int, error)
	// TrimWindow drops attempts older than the window.
	TrimWindow(ctx context.Context, identifier string, window time.Duration, reference time.Time) error
	// OldestAttempt returns the earliest attempt still inside the window,
	// with false when the window is empty.
	OldestAttempt(ctx context.Context, identifier string, window time.Duration, reference time.Time) (time.Time, bool, error)
}
