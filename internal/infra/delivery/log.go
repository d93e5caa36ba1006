package delivery

import (
	"context"

	"go.uber.org/zap"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/core/port"
	"github.com/grocify/account-guard/internal/infra/logger"
)

// LogChannel writes codes to the log instead of delivering them. Useful for
// development environments without an SMTP relay.
type LogChannel struct {
	log *zap.Logger
}

// NewLogChannel constructs a development-friendly delivery channel.
func NewLogChannel(log *zap.Logger) *LogChannel {
	return &LogChannel{log: log}
}

// Send logs the code at info level with the destination masked.
func (c *LogChannel) Send(_ context.Context, destination, code string) error {
	c.log.Info("verification code (dev delivery)",
		zap.String("destination", logger.MaskEmail(destination)),
		zap.String("code", code),
	)
	return nil
}

var _ port.CodeDeliveryChannel = (*LogChannel)(nil)

// LogGateway fakes a phone verification service for development: every check
// is approved.
type LogGateway struct {
	log *zap.Logger
}

// NewLogGateway constructs a development-friendly phone gateway.
func NewLogGateway(log *zap.Logger) *LogGateway {
	return &LogGateway{log: log}
}

// Start logs the request instead of sending a code.
func (g *LogGateway) Start(_ context.Context, phone string) error {
	g.log.Info("phone verification started (dev gateway)",
		zap.String("phone", logger.MaskPhone(phone)),
	)
	return nil
}

// Check approves every code.
func (g *LogGateway) Check(_ context.Context, phone, _ string) (domain.VerifyStatus, error) {
	g.log.Info("phone verification checked (dev gateway)",
		zap.String("phone", logger.MaskPhone(phone)),
	)
	return domain.VerifyStatusApproved, nil
}

var _ port.PhoneVerifyGateway = (*LogGateway)(nil)

// LogNotifier logs administrator alerts in development.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier constructs a development-friendly admin notifier.
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify logs the alert at warn level.
func (n *LogNotifier) Notify(_ context.Context, message string) error {
	n.log.Warn("administrator alert (dev notifier)", zap.String("message", message))
	return nil
}

var _ port.AdminNotifier = (*LogNotifier)(nil)
