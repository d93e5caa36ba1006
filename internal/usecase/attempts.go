package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grocify/account-guard/internal/core/port"
	"github.com/grocify/account-guard/internal/repository"
)

// AttemptTracker is the generic "N failures within window W" counter used for
// login, registration, and code failures alike. Each identity moves through
// Clear -> Accumulating -> Locked; lock status is derived from the record,
// never stored as a flag. Per-identity serialization of the read-modify-write
// is delegated to the lock store.
type AttemptTracker struct {
	locks port.LockStore
	now   func() time.Time
}

// NewAttemptTracker constructs a tracker over the provided lock store.
func NewAttemptTracker(locks port.LockStore) *AttemptTracker {
	return &AttemptTracker{locks: locks, now: time.Now}
}

// WithClock overrides the internal clock, used in tests.
func (t *AttemptTracker) WithClock(clock func() time.Time) *AttemptTracker {
	if clock != nil {
		t.now = clock
	}
	return t
}

// RecordFailure registers one more failure for the identity. A failure older
// than resetWindow starts a fresh window, so stale history never compounds.
// Returns whether the identity has now reached maxAttempts.
func (t *AttemptTracker) RecordFailure(ctx context.Context, identity string, resetWindow time.Duration, maxAttempts int) (bool, error) {
	lock, err := t.locks.RecordFailure(ctx, identity, t.now().UTC(), resetWindow)
	if err != nil {
		return false, fmt.Errorf("record failure for %q: %w", identity, err)
	}
	return lock.FailureCount >= maxAttempts, nil
}

// IsLocked reports whether the identity is currently locked out. A never-seen
// identity is not locked. The lock window is independent of the failure reset
// window: the former bounds how long a tripped identity stays locked, the
// latter how long failures keep accumulating.
func (t *AttemptTracker) IsLocked(ctx context.Context, identity string, maxAttempts int, lockWindow time.Duration) (bool, error) {
	lock, err := t.locks.Get(ctx, identity)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load lock for %q: %w", identity, err)
	}

	if lock.FailureCount < maxAttempts {
		return false, nil
	}

	age := t.now().UTC().Unix() - lock.LastFailureUnix
	return age <= int64(lockWindow/time.Second), nil
}

// Clear removes the failure record, e.g. after a successful login. Clearing
// an identity that has no record is a no-op.
func (t *AttemptTracker) Clear(ctx context.Context, identity string) error {
	if err := t.locks.Delete(ctx, identity); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("clear lock for %q: %w", identity, err)
	}
	return nil
}
