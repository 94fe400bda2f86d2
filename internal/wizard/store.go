package wizard

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrSessionNotFound indicates the session id is unknown or expired.
	ErrSessionNotFound = errors.New("wizard session not found")

	// ErrSubmitInFlight indicates a submit reservation is already held for
	// the session. Guards against duplicate record creation from rapid
	// repeated clicks.
	ErrSubmitInFlight = errors.New("submit already in progress")
)

// Store persists wizard session state. Each session is owned by one user and
// edited from one screen at a time; the only cross-call coordination is the
// submit reservation.
type Store interface {
	Save(ctx context.Context, st State, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (State, error)
	Delete(ctx context.Context, sessionID string) error

	// BeginSubmit atomically reserves the session for one submit attempt.
	// It reports false when a reservation is already held.
	BeginSubmit(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
	EndSubmit(ctx context.Context, sessionID string) error
}
