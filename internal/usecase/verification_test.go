package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/grocify/account-guard/internal/core/domain"
)

func newCodeManagerFixture() (*VerificationCodeManager, *memAccounts, *memChannel, *memGateway, *fakeClock) {
	clock := newFakeClock()
	accounts := newMemAccounts()
	channel := &memChannel{}
	gateway := &memGateway{status: domain.VerifyStatusApproved}
	manager := NewVerificationCodeManager(accounts, channel, gateway).WithClock(clock.Now)
	return manager, accounts, channel, gateway, clock
}

func seedPendingAccount(accounts *memAccounts, clock *fakeClock, code string) *domain.Account {
	account := &domain.Account{
		Username:         "alice",
		Email:            "alice@example.com",
		Phone:            "5551234567",
		Status:           domain.AccountStatusPendingEmail,
		VerificationCode: code,
		CodeIssuedAt:     clock.Now().UTC().Unix(),
		CreatedAt:        clock.Now(),
	}
	accounts.accounts[account.Username] = account
	return account
}

func TestIssueEmailCode_StoresBeforeDelivering(t *testing.T) {
	manager, accounts, channel, _, clock := newCodeManagerFixture()
	account := seedPendingAccount(accounts, clock, "")
	account.EmailCodeFailures = 2

	code, err := manager.IssueEmailCode(context.Background(), account)
	if err != nil {
		t.Fatalf("IssueEmailCode returned error: %v", err)
	}
	if len(code) != VerificationCodeLength {
		t.Fatalf("expected a %d-digit code, got %q", VerificationCodeLength, code)
	}
	if channel.lastCode != code {
		t.Fatalf("expected delivered code %q to match stored code %q", channel.lastCode, code)
	}

	stored := accounts.accounts["alice"]
	if stored.VerificationCode != code {
		t.Fatalf("expected code persisted, got %q", stored.VerificationCode)
	}
	if stored.EmailCodeFailures != 0 {
		t.Fatalf("expected attempt counter reset, got %d", stored.EmailCodeFailures)
	}
	if stored.CodeIssuedAt != clock.Now().UTC().Unix() {
		t.Fatalf("expected issue timestamp recorded")
	}
}

func TestValidateEmail_AcceptsAndConsumesCode(t *testing.T) {
	manager, accounts, _, _, clock := newCodeManagerFixture()
	account := seedPendingAccount(accounts, clock, "123456")

	outcome, err := manager.ValidateEmail(context.Background(), account, "123456")
	if err != nil {
		t.Fatalf("ValidateEmail returned error: %v", err)
	}
	if outcome != domain.VerifyAccepted {
		t.Fatalf("expected accepted, got %q", outcome)
	}

	stored := accounts.accounts["alice"]
	if stored.VerificationCode != "" || stored.CodeIssuedAt != 0 {
		t.Fatalf("expected code consumed, got %q issued at %d", stored.VerificationCode, stored.CodeIssuedAt)
	}

	// The consumed code must not be replayable.
	outcome, err = manager.ValidateEmail(context.Background(), account, "123456")
	if err != nil {
		t.Fatalf("ValidateEmail returned error: %v", err)
	}
	if outcome != domain.VerifyExpired {
		t.Fatalf("expected a consumed code to read as expired, got %q", outcome)
	}
}

func TestValidateEmail_WrongCodeIncrementsFailures(t *testing.T) {
	manager, accounts, _, _, clock := newCodeManagerFixture()
	account := seedPendingAccount(accounts, clock, "123456")

	outcome, err := manager.ValidateEmail(context.Background(), account, "654321")
	if err != nil {
		t.Fatalf("ValidateEmail returned error: %v", err)
	}
	if outcome != domain.VerifyWrongCode {
		t.Fatalf("expected wrong code, got %q", outcome)
	}
	if accounts.accounts["alice"].EmailCodeFailures != 1 {
		t.Fatalf("expected failure counter at 1, got %d", accounts.accounts["alice"].EmailCodeFailures)
	}
}

func TestValidateEmail_ExpiryBoundary(t *testing.T) {
	manager, accounts, _, _, clock := newCodeManagerFixture()
	account := seedPendingAccount(accounts, clock, "123456")

	// Exactly at the validity limit the code still works.
	clock.Advance(CodeValidityWindow)
	outcome, err := manager.ValidateEmail(context.Background(), account, "123456")
	if err != nil {
		t.Fatalf("ValidateEmail returned error: %v", err)
	}
	if outcome != domain.VerifyAccepted {
		t.Fatalf("expected code still valid at the boundary, got %q", outcome)
	}

	account = seedPendingAccount(accounts, clock, "123456")
	clock.Advance(CodeValidityWindow + time.Second)
	outcome, err = manager.ValidateEmail(context.Background(), account, "123456")
	if err != nil {
		t.Fatalf("ValidateEmail returned error: %v", err)
	}
	if outcome != domain.VerifyExpired {
		t.Fatalf("expected code expired past the boundary, got %q", outcome)
	}
}

func TestValidateEmail_AttemptCapChecksBeforeComparing(t *testing.T) {
	manager, accounts, _, _, clock := newCodeManagerFixture()
	account := seedPendingAccount(accounts, clock, "123456")
	account.EmailCodeFailures = MaxEmailCodeAttempts

	// Even the correct code is refused once the cap is hit.
	outcome, err := manager.ValidateEmail(context.Background(), account, "123456")
	if err != nil {
		t.Fatalf("ValidateEmail returned error: %v", err)
	}
	if outcome != domain.VerifyMaxAttemptsReached {
		t.Fatalf("expected max attempts, got %q", outcome)
	}
	if accounts.accounts["alice"].VerificationCode != "123456" {
		t.Fatalf("expected code left untouched after a capped attempt")
	}
}

func TestValidatePhone_GatewayStatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		status   domain.VerifyStatus
		outcome  domain.VerifyOutcome
		failures int
	}{
		{"approved is accepted", domain.VerifyStatusApproved, domain.VerifyAccepted, 0},
		{"pending counts as a wrong code", domain.VerifyStatusPending, domain.VerifyWrongCode, 1},
		{"failed counts as expired", domain.VerifyStatusFailed, domain.VerifyExpired, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			manager, accounts, _, gateway, clock := newCodeManagerFixture()
			gateway.status = tc.status
			account := seedPendingAccount(accounts, clock, "")
			account.Status = domain.AccountStatusPendingPhone

			outcome, status, err := manager.ValidatePhone(context.Background(), account, "123456")
			if err != nil {
				t.Fatalf("ValidatePhone returned error: %v", err)
			}
			if outcome != tc.outcome {
				t.Fatalf("expected outcome %q, got %q", tc.outcome, outcome)
			}
			if status != tc.status {
				t.Fatalf("expected status %q, got %q", tc.status, status)
			}
			if accounts.accounts["alice"].PhoneCodeFailures != tc.failures {
				t.Fatalf("expected %d failures, got %d", tc.failures, accounts.accounts["alice"].PhoneCodeFailures)
			}
		})
	}
}

func TestValidatePhone_AttemptCapShortCircuitsGateway(t *testing.T) {
	manager, accounts, _, gateway, clock := newCodeManagerFixture()
	account := seedPendingAccount(accounts, clock, "")
	account.PhoneCodeFailures = MaxPhoneCodeAttempts
	gateway.checkErr = context.DeadlineExceeded

	outcome, _, err := manager.ValidatePhone(context.Background(), account, "123456")
	if err != nil {
		t.Fatalf("ValidatePhone returned error: %v", err)
	}
	if outcome != domain.VerifyMaxAttemptsReached {
		t.Fatalf("expected max attempts, got %q", outcome)
	}
}

func TestStartPhoneVerification_ResetsCounter(t *testing.T) {
	manager, accounts, _, gateway, clock := newCodeManagerFixture()
	account := seedPendingAccount(accounts, clock, "")
	account.PhoneCodeFailures = 2

	if err := manager.StartPhoneVerification(context.Background(), account); err != nil {
		t.Fatalf("StartPhoneVerification returned error: %v", err)
	}
	if gateway.startCalls != 1 {
		t.Fatalf("expected one gateway start, got %d", gateway.startCalls)
	}
	if accounts.accounts["alice"].PhoneCodeFailures != 0 {
		t.Fatalf("expected counter reset, got %d", accounts.accounts["alice"].PhoneCodeFailures)
	}
}
