package usecase

import (
	"context"
	"errors"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/infra/security"
	"github.com/grocify/account-guard/internal/repository"
)

// ChangePassword replaces the account's credential after the new password
// clears the same rule engine used at registration.
func (c *AccountCoordinator) ChangePassword(ctx context.Context, username, newPassword, ip string, retries int) domain.Result[bool] {
	op := domain.OpChangePassword

	account, err := c.accounts.Get(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return c.reject(ctx, op, username, ip, LogUsernameNotFound, MsgUnknownAccount, retries)
	}
	if err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}

	if account.Disabled() {
		return c.reject(ctx, op, username, ip, LogUserDisabled, MsgAccountDisabled, retries)
	}

	if !security.LengthInRange(newPassword, security.MinPasswordLength, security.MaxPasswordLength) ||
		!security.ANSCharactersOnly(newPassword) {
		return c.reject(ctx, op, username, ip, LogInvalidInput, MsgInvalidInput, retries)
	}

	eval, err := c.passwords.Evaluate(ctx, newPassword)
	if err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}
	if !eval.Accepted {
		return c.reject(ctx, op, username, ip, passwordRejectionLog(eval.Reason), passwordRejectionMessage(eval.Reason), retries)
	}

	digest, err := security.DigestCredential(newPassword)
	if err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}

	patch := domain.AccountPatch{PasswordDigest: &digest}
	if err := c.accounts.Update(ctx, username, patch); err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}

	return c.succeed(ctx, op, username, ip, MsgPasswordUpdated, retries)
}

// DisableAccount administratively disables a username.
func (c *AccountCoordinator) DisableAccount(ctx context.Context, username, ip string, retries int) domain.Result[bool] {
	op := domain.OpDisableAccount

	account, err := c.accounts.Get(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return c.reject(ctx, op, username, ip, LogUsernameNotFound, MsgUnknownAccount, retries)
	}
	if err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}

	if account.Disabled() {
		return c.reject(ctx, op, username, ip, LogAlreadyDisabled, MsgAccountDisabled, retries)
	}

	patch := domain.AccountPatch{Status: domain.Ptr(domain.AccountStatusDisabled)}
	if err := c.accounts.Update(ctx, username, patch); err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}

	return c.succeed(ctx, op, username, ip, MsgAccountNowDisabled, retries)
}

// EnableAccount re-activates a disabled username.
func (c *AccountCoordinator) EnableAccount(ctx context.Context, username, ip string, retries int) domain.Result[bool] {
	op := domain.OpEnableAccount

	account, err := c.accounts.Get(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return c.reject(ctx, op, username, ip, LogUsernameNotFound, MsgUnknownAccount, retries)
	}
	if err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}

	if !account.Disabled() {
		return c.reject(ctx, op, username, ip, LogAlreadyEnabled, MsgAccountEnabled, retries)
	}

	patch := domain.AccountPatch{Status: domain.Ptr(domain.AccountStatusActive)}
	if err := c.accounts.Update(ctx, username, patch); err != nil {
		return c.systemFailure(ctx, op, username, ip, err, retries)
	}

	return c.succeed(ctx, op, username, ip, MsgAccountEnabled, retries)
}
