package usecase

import (
	"context"
	"errors"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/repository"
)

// VerifyEmail validates the emailed code for the account and, during
// registration, advances it to PendingPhoneVerification.
func (c *AccountCoordinator) VerifyEmail(ctx context.Context, username, code, ip string, retries int) domain.Result[bool] {
	op := domain.OpVerifyEmail

	account, err := c.accounts.Get(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return c.reject(ctx, op, username, ip, LogUsernameNotFound, MsgUnknownAccount, retries)
	}
	if err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}

	outcome, err := c.codes.ValidateEmail(ctx, account, code)
	if err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}

	switch outcome {
	case domain.VerifyMaxAttemptsReached:
		return c.reject(ctx, op, username, ip, LogMaxEmailTries, MsgMaxEmailTries, retries)
	case domain.VerifyExpired:
		return c.reject(ctx, op, username, ip, LogEmailCodeExpired, MsgEmailCodeExpired, retries)
	case domain.VerifyWrongCode:
		return c.reject(ctx, op, username, ip, LogWrongEmailCode, MsgWrongEmailCode, retries)
	}

	if account.Status == domain.AccountStatusPendingEmail {
		patch := domain.AccountPatch{Status: domain.Ptr(domain.AccountStatusPendingPhone)}
		if err := c.accounts.Update(ctx, username, patch); err != nil {
			return c.systemFailure(ctx, op, username, ip, err, retries)
		}
	}

	return c.succeed(ctx, op, username, ip, MsgVerifyEmailSuccess, retries)
}

// VerifyPhone validates the phone code through the gateway. During
// registration a successful check promotes the account to Active; the
// promotion lives here, not in the code manager. A pending gateway status and
// a genuine failure both consume an attempt but audit differently.
func (c *AccountCoordinator) VerifyPhone(ctx context.Context, username, code, ip string, duringRegistration bool, retries int) domain.Result[bool] {
	op := domain.OpVerifyPhone

	account, err := c.accounts.Get(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return c.reject(ctx, op, username, ip, LogUsernameNotFound, MsgUnknownAccount, retries)
	}
	if err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}

	outcome, _, err := c.codes.ValidatePhone(ctx, account, code)
	if err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}

	switch outcome {
	case domain.VerifyMaxAttemptsReached:
		return c.reject(ctx, op, username, ip, LogMaxPhoneTries, MsgMaxPhoneTries, retries)
	case domain.VerifyWrongCode:
		return c.reject(ctx, op, username, ip, LogWrongPhoneCode, MsgWrongPhoneCode, retries)
	case domain.VerifyExpired:
		return c.reject(ctx, op, username, ip, LogPhoneCodeExpired, MsgPhoneCodeExpired, retries)
	}

	if duringRegistration {
		patch := domain.AccountPatch{Status: domain.Ptr(domain.AccountStatusActive)}
		if err := c.accounts.Update(ctx, username, patch); err != nil {
			return c.systemFailure(ctx, op, username, ip, err, retries)
		}
	}

	return c.succeed(ctx, op, username, ip, MsgVerifyPhoneSuccess, retries)
}

// SendEmailCode issues a fresh email code, overwriting any outstanding one
// and resetting the attempt counter.
func (c *AccountCoordinator) SendEmailCode(ctx context.Context, username, ip string, retries int) domain.Result[bool] {
	op := domain.OpSendEmailCode

	account, err := c.accounts.Get(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return c.reject(ctx, op, username, ip, LogUsernameNotFound, MsgUnknownAccount, retries)
	}
	if err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}

	if _, err := c.codes.IssueEmailCode(ctx, account); err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}

	return c.succeed(ctx, op, username, ip, MsgSendEmailCodeSuccess, retries)
}

// SendPhoneCode asks the verification gateway to deliver a fresh phone code.
func (c *AccountCoordinator) SendPhoneCode(ctx context.Context, username, ip string, retries int) domain.Result[bool] {
	op := domain.OpSendPhoneCode

	account, err := c.accounts.Get(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return c.reject(ctx, op, username, ip, LogUsernameNotFound, MsgUnknownAccount, retries)
	}
	if err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}

	if err := c.codes.StartPhoneVerification(ctx, account); err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}

	return c.succeed(ctx, op, username, ip, MsgSendPhoneCodeSuccess, retries)
}
