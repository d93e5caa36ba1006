package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/core/port"
	"github.com/grocify/account-guard/internal/infra/config"
	"github.com/grocify/account-guard/internal/infra/logger"
)

// VerifyGateway talks to a Twilio-Verify-compatible HTTP API. The service
// generates and checks phone codes itself; we only relay start and check
// requests and map the returned status.
type VerifyGateway struct {
	cfg    config.PhoneSettings
	client *http.Client
	log    *zap.Logger
}

// NewVerifyGateway constructs a gateway from phone settings.
func NewVerifyGateway(cfg config.PhoneSettings, log *zap.Logger) *VerifyGateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &VerifyGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

// Start asks the service to deliver a fresh code to the phone number.
func (g *VerifyGateway) Start(ctx context.Context, phone string) error {
	form := url.Values{}
	form.Set("To", "+1"+phone)
	form.Set("Channel", "sms")

	endpoint := fmt.Sprintf("%s/Services/%s/Verifications", g.cfg.BaseURL, g.cfg.ServiceSID)

	var resp verificationResponse
	if err := g.post(ctx, endpoint, form, &resp); err != nil {
		return fmt.Errorf("start phone verification: %w", err)
	}

	g.log.Info("phone verification started",
		zap.String("phone", logger.MaskPhone(phone)),
		zap.String("status", resp.Status),
	)
	return nil
}

// Check submits the user's code and maps the service status.
func (g *VerifyGateway) Check(ctx context.Context, phone, code string) (domain.VerifyStatus, error) {
	form := url.Values{}
	form.Set("To", "+1"+phone)
	form.Set("Code", code)

	endpoint := fmt.Sprintf("%s/Services/%s/VerificationCheck", g.cfg.BaseURL, g.cfg.ServiceSID)

	var resp verificationResponse
	if err := g.post(ctx, endpoint, form, &resp); err != nil {
		return "", fmt.Errorf("check phone verification: %w", err)
	}

	switch resp.Status {
	case "approved":
		return domain.VerifyStatusApproved, nil
	case "pending":
		return domain.VerifyStatusPending, nil
	default:
		return domain.VerifyStatusFailed, nil
	}
}

type verificationResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

func (g *VerifyGateway) post(ctx context.Context, endpoint string, form url.Values, out *verificationResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(g.cfg.AccountSID, g.cfg.AuthToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

var _ port.PhoneVerifyGateway = (*VerifyGateway)(nil)
