package kafka

import (
	"context"

	"go.uber.org/zap"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/core/port"
)

// StubAuditLog logs audit entries instead of sending them to Kafka. Useful
// for development environments without a broker.
type StubAuditLog struct {
	logger *zap.Logger
}

// NewStubAuditLog constructs a development-friendly audit log.
func NewStubAuditLog(logger *zap.Logger) *StubAuditLog {
	return &StubAuditLog{logger: logger}
}

// Record logs the entry at info level.
func (p *StubAuditLog) Record(_ context.Context, entry domain.AuditEntry) error {
	p.logger.Info("stub audit entry",
		zap.String("id", entry.ID),
		zap.Time("timestamp", entry.Timestamp),
		zap.String("operation", entry.Operation),
		zap.String("identity", entry.Identity),
		zap.String("source_ip", entry.SourceIP),
		zap.String("reason", entry.Reason),
	)
	return nil
}

var _ port.AuditLog = (*StubAuditLog)(nil)
