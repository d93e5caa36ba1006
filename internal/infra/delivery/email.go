// Package delivery holds the outbound channels for verification codes and
// administrator alerts.
package delivery

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/grocify/account-guard/internal/core/port"
	"github.com/grocify/account-guard/internal/infra/config"
	"github.com/grocify/account-guard/internal/infra/logger"
)

// SMTPEmailChannel delivers verification codes over a plain SMTP relay.
//
// No SMTP client library is involved on purpose: the messages are short
// single-part texts and net/smtp covers AUTH PLAIN and STARTTLS on its own.
type SMTPEmailChannel struct {
	cfg config.SMTPSettings
	log *zap.Logger

	// send is swapped in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPEmailChannel constructs an email channel from SMTP settings.
func NewSMTPEmailChannel(cfg config.SMTPSettings, log *zap.Logger) *SMTPEmailChannel {
	if log == nil {
		log = zap.NewNop()
	}
	return &SMTPEmailChannel{cfg: cfg, log: log, send: smtp.SendMail}
}

// Send delivers a verification code to the destination address.
func (c *SMTPEmailChannel) Send(ctx context.Context, destination, code string) error {
	subject := "Your Grocify verification code"
	body := fmt.Sprintf("Your verification code is %s. It expires in 15 minutes.", code)

	if err := c.deliver(ctx, destination, subject, body); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}

	c.log.Info("verification email sent",
		zap.String("destination", logger.MaskEmail(destination)),
	)
	return nil
}

func (c *SMTPEmailChannel) deliver(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", c.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)

	var auth smtp.Auth
	if c.cfg.Username != "" {
		auth = smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	}

	return c.send(addr, auth, c.cfg.From, []string{to}, []byte(msg.String()))
}

var _ port.CodeDeliveryChannel = (*SMTPEmailChannel)(nil)

// AdminMailer notifies the system administrator by email. The subject carries
// the date so repeated alerts thread together in a mailbox.
type AdminMailer struct {
	channel *SMTPEmailChannel
	now     func() time.Time
}

// NewAdminMailer constructs an administrator notifier on top of the email channel.
func NewAdminMailer(channel *SMTPEmailChannel) *AdminMailer {
	return &AdminMailer{channel: channel, now: time.Now}
}

// WithClock overrides the internal clock, used in tests.
func (m *AdminMailer) WithClock(clock func() time.Time) *AdminMailer {
	if clock != nil {
		m.now = clock
	}
	return m
}

// Notify sends the message to the configured administrator address.
func (m *AdminMailer) Notify(ctx context.Context, message string) error {
	subject := fmt.Sprintf("Grocify system alert %s", m.now().UTC().Format("01-02-2006"))

	if err := m.channel.deliver(ctx, m.channel.cfg.AdminEmail, subject, message); err != nil {
		return fmt.Errorf("notify admin: %w", err)
	}

	return nil
}

var _ port.AdminNotifier = (*AdminMailer)(nil)
