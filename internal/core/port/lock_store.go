package port

import (
	"context"
	"time"

	"github.com/grocify/account-guard/internal/core/domain"
)

// LockStore persists per-identity failure records. RecordFailure performs the
// read-modify-write atomically per identity: if the previous failure is older
// than resetWindow the count restarts at 1, otherwise it increments. Failures
// for distinct identities must not serialize against each other.
type LockStore interface {
	Get(ctx context.Context, identity string) (*domain.IdentityLock, error)
	RecordFailure(ctx context.Context, identity string, at time.Time, resetWindow time.Duration) (domain.IdentityLock, error)
	Delete(ctx context.Context, identity string) error
}
