package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/core/port"
	"github.com/grocify/account-guard/internal/infra/security"
)

// AccountCoordinator orchestrates registration, login, verification, and
// password flows by composing the rule engine, attempt tracker, and code
// manager with persistence, delivery, and audit collaborators.
//
// Every operation follows the same discipline: preconditions (locks, caps)
// before expensive work; domain failures audited and returned with the
// caller's retry count untouched; infrastructure faults logged raw
// server-side only, retry count incremented, and the administrator notified
// once the ceiling is reached. The caller passes the retry count from the
// previous attempt back in.
type AccountCoordinator struct {
	accounts  port.AccountStore
	passwords *security.PasswordRuleEngine
	attempts  *AttemptTracker
	codes     *VerificationCodeManager
	audit     port.AuditLog
	admin     port.AdminNotifier
	log       *zap.Logger
	now       func() time.Time
}

// NewAccountCoordinator wires the coordinator from its collaborators.
func NewAccountCoordinator(
	accounts port.AccountStore,
	passwords *security.PasswordRuleEngine,
	attempts *AttemptTracker,
	codes *VerificationCodeManager,
	audit port.AuditLog,
	admin port.AdminNotifier,
	log *zap.Logger,
) *AccountCoordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountCoordinator{
		accounts:  accounts,
		passwords: passwords,
		attempts:  attempts,
		codes:     codes,
		audit:     audit,
		admin:     admin,
		log:       log,
		now:       time.Now,
	}
}

// WithClock overrides the internal clock, used in tests.
func (c *AccountCoordinator) WithClock(clock func() time.Time) *AccountCoordinator {
	if clock != nil {
		c.now = clock
	}
	return c
}

// recordAudit appends an audit entry. Audit is best effort: a failure is
// logged and swallowed so it never aborts the primary operation.
func (c *AccountCoordinator) recordAudit(ctx context.Context, op, identity, ip, reason string) {
	entry := domain.AuditEntry{
		ID:        uuid.NewString(),
		Timestamp: c.now().UTC(),
		Operation: op,
		Identity:  identity,
		SourceIP:  ip,
		Reason:    reason,
	}
	if err := c.audit.Record(ctx, entry); err != nil {
		c.log.Warn("audit record failed",
			zap.String("operation", op),
			zap.String("identity", identity),
			zap.Error(err),
		)
	}
}

// reject finishes an operation with a domain failure: audited with the
// specific reason, returned with a user-facing message and an unchanged
// retry count.
func (c *AccountCoordinator) reject(ctx context.Context, op, identity, ip, logReason, userMsg string, retries int) domain.Result[bool] {
	c.recordAudit(ctx, op, identity, ip, logReason)
	return domain.Reject[bool](userMsg, retries)
}

// succeed finishes an operation with an audited success entry.
func (c *AccountCoordinator) succeed(ctx context.Context, op, identity, ip, userMsg string, retries int) domain.Result[bool] {
	c.recordAudit(ctx, op, identity, ip, "")
	return domain.Succeed(userMsg, true, retries)
}

// systemFailure finishes an operation after an infrastructure fault. The raw
// fault stays in the server-side log and audit trail; the caller only ever
// sees the generic message. Crossing the retry ceiling additionally notifies
// the system administrator.
func (c *AccountCoordinator) systemFailure(ctx context.Context, op, identity, ip string, err error, retries int) domain.Result[bool] {
	c.log.Error("operation hit infrastructure fault",
		zap.String("operation", op),
		zap.String("identity", identity),
		zap.Error(err),
	)
	c.recordAudit(ctx, op, identity, ip, err.Error())

	retries++
	if retries >= OperationRetryCeiling {
		msg := fmt.Sprintf("%s failed %d times for %s", op, retries, identity)
		if nerr := c.admin.Notify(ctx, msg); nerr != nil {
			c.log.Error("admin notification failed", zap.Error(nerr))
		}
	}

	return domain.SystemFailure[bool](MsgSystemError, retries)
}
