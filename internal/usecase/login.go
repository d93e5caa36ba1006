package usecase

import (
	"context"
	"errors"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/infra/security"
	"github.com/grocify/account-guard/internal/repository"
)

// LoginInput carries an authentication request.
type LoginInput struct {
	Username string
	Password string
	IP       string
}

// Login authenticates a username/password pair. Lock checks run before the
// credential digest is ever computed. An unknown username and a wrong
// password produce the same user-facing message; the audit trail keeps them
// apart. Success clears the accumulated failure record for the username.
func (c *AccountCoordinator) Login(ctx context.Context, in LoginInput, retries int) domain.Result[bool] {
	op := domain.OpLogin

	locked, err := c.attempts.IsLocked(ctx, ipIdentity(in.IP), MaxRegistrationAttempts, IPLockWindow)
	if err != nil {
		return c.systemFailure(ctx, op, in.Username, in.IP, err, retries)
	}
	if locked {
		return c.reject(ctx, op, in.Username, in.IP, LogIPLockout, MsgTooManyAttempts, retries)
	}

	userKey := loginIdentity(in.Username)
	locked, err = c.attempts.IsLocked(ctx, userKey, MaxLoginAttempts, LoginTriesResetWindow)
	if err != nil {
		return c.systemFailure(ctx, op, in.Username, in.IP, err, retries)
	}
	if locked {
		return c.reject(ctx, op, in.Username, in.IP, LogTooManyLogins, MsgTooManyLogins, retries)
	}

	account, err := c.accounts.Get(ctx, in.Username)
	if errors.Is(err, repository.ErrNotFound) {
		if _, rerr := c.attempts.RecordFailure(ctx, ipIdentity(in.IP), RegistrationTriesResetWindow, MaxRegistrationAttempts); rerr != nil {
			return c.systemFailure(ctx, op, in.Username, in.IP, rerr, retries)
		}
		return c.reject(ctx, op, in.Username, in.IP, LogUsernameNotFound, MsgInvalidCredentials, retries)
	}
	if err != nil {
		return c.systemFailure(ctx, op, in.Username, in.IP, err, retries)
	}

	if account.Disabled() {
		return c.reject(ctx, op, in.Username, in.IP, LogUserDisabled, MsgAccountDisabled, retries)
	}
	if account.Pending() {
		return c.reject(ctx, op, in.Username, in.IP, LogAccountPending, MsgAccountNotVerified, retries)
	}

	ok, err := security.VerifyCredential(in.Password, account.PasswordDigest)
	if err != nil {
		return c.systemFailure(ctx, op, in.Username, in.IP, err, retries)
	}
	if !ok {
		if _, rerr := c.attempts.RecordFailure(ctx, userKey, LoginTriesResetWindow, MaxLoginAttempts); rerr != nil {
			return c.systemFailure(ctx, op, in.Username, in.IP, rerr, retries)
		}
		return c.reject(ctx, op, in.Username, in.IP, LogInvalidPassword, MsgInvalidCredentials, retries)
	}

	if err := c.attempts.Clear(ctx, userKey); err != nil {
		return c.systemFailure(ctx, op, in.Username, in.IP, err, retries)
	}

	return c.succeed(ctx, op, in.Username, in.IP, MsgLoginSuccess, retries)
}
