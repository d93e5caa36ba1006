package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/core/port"
	"github.com/grocify/account-guard/internal/infra/security"
)

// VerificationCodeManager issues and validates the time-boxed, attempt-limited
// one-time codes that gate account activation. Email codes are generated and
// stored here; phone codes live inside the external verification gateway, so
// only their attempt counter is local. Promotion of a verified account is the
// coordinator's responsibility, not this component's.
type VerificationCodeManager struct {
	accounts port.AccountStore
	email    port.CodeDeliveryChannel
	gateway  port.PhoneVerifyGateway
	now      func() time.Time

	codeLength  int
	maxAttempts int
	validity    time.Duration
}

// NewVerificationCodeManager constructs a manager with the service policy
// defaults (6-digit codes, 3 attempts, 15 minute validity).
func NewVerificationCodeManager(accounts port.AccountStore, email port.CodeDeliveryChannel, gateway port.PhoneVerifyGateway) *VerificationCodeManager {
	return &VerificationCodeManager{
		accounts:    accounts,
		email:       email,
		gateway:     gateway,
		now:         time.Now,
		codeLength:  VerificationCodeLength,
		maxAttempts: MaxEmailCodeAttempts,
		validity:    CodeValidityWindow,
	}
}

// WithClock overrides the internal clock, used in tests.
func (m *VerificationCodeManager) WithClock(clock func() time.Time) *VerificationCodeManager {
	if clock != nil {
		m.now = clock
	}
	return m
}

// IssueEmailCode generates a fresh code, persists it with the issue timestamp
// (overwriting any prior code and resetting the attempt counter), and only
// then hands it to the delivery channel.
func (m *VerificationCodeManager) IssueEmailCode(ctx context.Context, account *domain.Account) (string, error) {
	code, err := security.GenerateNumericCode(m.codeLength)
	if err != nil {
		return "", fmt.Errorf("generate email code: %w", err)
	}

	issuedAt := m.now().UTC().Unix()
	patch := domain.AccountPatch{
		VerificationCode:  &code,
		CodeIssuedAt:      &issuedAt,
		EmailCodeFailures: domain.Ptr(0),
	}
	if err := m.accounts.Update(ctx, account.Username, patch); err != nil {
		return "", fmt.Errorf("store email code: %w", err)
	}

	if err := m.email.Send(ctx, account.Email, code); err != nil {
		return "", fmt.Errorf("deliver email code: %w", err)
	}

	account.VerificationCode = code
	account.CodeIssuedAt = issuedAt
	account.EmailCodeFailures = 0

	return code, nil
}

// StartPhoneVerification asks the gateway to send a code to the account's
// phone number and resets the local attempt counter.
func (m *VerificationCodeManager) StartPhoneVerification(ctx context.Context, account *domain.Account) error {
	patch := domain.AccountPatch{PhoneCodeFailures: domain.Ptr(0)}
	if err := m.accounts.Update(ctx, account.Username, patch); err != nil {
		return fmt.Errorf("reset phone code failures: %w", err)
	}

	if err := m.gateway.Start(ctx, account.Phone); err != nil {
		return fmt.Errorf("start phone verification: %w", err)
	}

	account.PhoneCodeFailures = 0

	return nil
}

// ValidateEmail checks a candidate against the stored email code. Attempt cap
// is checked before anything else, so a capped account never even gets a code
// comparison; expiry is checked next; a correct code is consumed.
func (m *VerificationCodeManager) ValidateEmail(ctx context.Context, account *domain.Account, candidate string) (domain.VerifyOutcome, error) {
	if account.EmailCodeFailures >= m.maxAttempts {
		return domain.VerifyMaxAttemptsReached, nil
	}

	now := m.now().UTC().Unix()
	if account.VerificationCode == "" || now > account.CodeIssuedAt+int64(m.validity/time.Second) {
		return domain.VerifyExpired, nil
	}

	if candidate == account.VerificationCode {
		patch := domain.AccountPatch{
			VerificationCode: domain.Ptr(""),
			CodeIssuedAt:     domain.Ptr(int64(0)),
		}
		if err := m.accounts.Update(ctx, account.Username, patch); err != nil {
			return "", fmt.Errorf("consume email code: %w", err)
		}
		account.VerificationCode = ""
		account.CodeIssuedAt = 0
		return domain.VerifyAccepted, nil
	}

	failures := account.EmailCodeFailures + 1
	if err := m.accounts.Update(ctx, account.Username, domain.AccountPatch{EmailCodeFailures: &failures}); err != nil {
		return "", fmt.Errorf("record email code failure: %w", err)
	}
	account.EmailCodeFailures = failures

	return domain.VerifyWrongCode, nil
}

// ValidatePhone checks a candidate through the verification gateway. The
// gateway distinguishes pending (not matched yet, still awaitable) from an
// outright failure; both count against the attempt cap but are surfaced
// separately so the audit trail can tell them apart.
func (m *VerificationCodeManager) ValidatePhone(ctx context.Context, account *domain.Account, candidate string) (domain.VerifyOutcome, domain.VerifyStatus, error) {
	if account.PhoneCodeFailures >= m.maxAttempts {
		return domain.VerifyMaxAttemptsReached, "", nil
	}

	status, err := m.gateway.Check(ctx, account.Phone, candidate)
	if err != nil {
		return "", "", fmt.Errorf("check phone code: %w", err)
	}

	if status == domain.VerifyStatusApproved {
		return domain.VerifyAccepted, status, nil
	}

	failures := account.PhoneCodeFailures + 1
	if err := m.accounts.Update(ctx, account.Username, domain.AccountPatch{PhoneCodeFailures: &failures}); err != nil {
		return "", "", fmt.Errorf("record phone code failure: %w", err)
	}
	account.PhoneCodeFailures = failures

	if status == domain.VerifyStatusPending {
		return domain.VerifyWrongCode, status, nil
	}

	return domain.VerifyExpired, status, nil
}
