package port

import (
	"context"

	"github.com/grocify/account-guard/internal/core/domain"
)

// AuditLog appends security-relevant operation records. Recording is best
// effort: a failure here must never abort the primary operation.
type AuditLog interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}
