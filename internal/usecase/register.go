package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/infra/security"
	"github.com/grocify/account-guard/internal/repository"
)

// RegisterInput carries a registration request.
type RegisterInput struct {
	Username string
	Email    string
	Phone    string
	Password string
	IP       string
}

// Register creates a new account in PendingEmailVerification and issues the
// first email code. Every rejected attempt counts against the source IP;
// enough of them lock the address out of registration entirely.
func (c *AccountCoordinator) Register(ctx context.Context, in RegisterInput, retries int) domain.Result[bool] {
	op := domain.OpRegistration
	ipKey := ipIdentity(in.IP)

	locked, err := c.attempts.IsLocked(ctx, ipKey, MaxRegistrationAttempts, IPLockWindow)
	if err != nil {
		return c.systemFailure(ctx, op, domain.AnonymousIdentity, in.IP, err, retries)
	}
	if locked {
		return c.reject(ctx, op, domain.AnonymousIdentity, in.IP, LogIPLockout, MsgTooManyAttempts, retries)
	}

	if !validRegistrationInput(in) {
		return c.registrationFailure(ctx, in.IP, domain.AnonymousIdentity, LogInvalidInput, MsgInvalidInput, retries)
	}

	canonEmail := security.CanonicalizeEmail(in.Email)

	taken, reason, err := c.identityTaken(ctx, in.Username, canonEmail, in.Phone)
	if err != nil {
		return c.systemFailure(ctx, op, in.Username, in.IP, err, retries)
	}
	if taken {
		return c.registrationFailure(ctx, in.IP, in.Username, reason, MsgIdentityUnavailable, retries)
	}

	eval, err := c.passwords.Evaluate(ctx, in.Password)
	if err != nil {
		return c.systemFailure(ctx, op, in.Username, in.IP, err, retries)
	}
	if !eval.Accepted {
		return c.registrationFailure(ctx, in.IP, in.Username, passwordRejectionLog(eval.Reason), passwordRejectionMessage(eval.Reason), retries)
	}

	digest, err := security.DigestCredential(in.Password)
	if err != nil {
		return c.systemFailure(ctx, op, in.Username, in.IP, err, retries)
	}

	account := domain.Account{
		Username:       in.Username,
		Email:          canonEmail,
		Phone:          in.Phone,
		PasswordDigest: digest,
		Status:         domain.AccountStatusPendingEmail,
		CreatedAt:      c.now().UTC(),
	}
	if err := c.accounts.Create(ctx, account); err != nil {
		return c.systemFailure(ctx, op, in.Username, in.IP, err, retries)
	}

	if _, err := c.codes.IssueEmailCode(ctx, &account); err != nil {
		return c.systemFailure(ctx, op, in.Username, in.IP, err, retries)
	}

	return c.succeed(ctx, op, in.Username, in.IP, MsgRegistrationSuccess, retries)
}

// registrationFailure records the failed attempt against the source IP before
// rejecting, so repeated garbage from one address eventually locks it.
func (c *AccountCoordinator) registrationFailure(ctx context.Context, ip, identity, logReason, userMsg string, retries int) domain.Result[bool] {
	if _, err := c.attempts.RecordFailure(ctx, ipIdentity(ip), RegistrationTriesResetWindow, MaxRegistrationAttempts); err != nil {
		return c.systemFailure(ctx, domain.OpRegistration, identity, ip, err, retries)
	}
	return c.reject(ctx, domain.OpRegistration, identity, ip, logReason, userMsg, retries)
}

func validRegistrationInput(in RegisterInput) bool {
	if !security.LengthInRange(in.Username, security.MinFieldLength, security.MaxFieldLength) ||
		!security.ANSCharactersOnly(in.Username) {
		return false
	}
	if !security.LengthInRange(in.Email, security.MinFieldLength, security.MaxFieldLength) ||
		!security.ValidEmailFormat(in.Email) {
		return false
	}
	if len(in.Phone) != security.PhoneNumberLength || !security.NumericOnly(in.Phone) {
		return false
	}
	if !security.LengthInRange(in.Password, security.MinPasswordLength, security.MaxPasswordLength) ||
		!security.ANSCharactersOnly(in.Password) {
		return false
	}
	return true
}

// identityTaken checks username, canonical email, and phone uniqueness. A
// pending account that outlived its reservation window is reclaimed: the
// stale row is deleted and the username treated as free.
func (c *AccountCoordinator) identityTaken(ctx context.Context, username, canonEmail, phone string) (bool, string, error) {
	exists, err := c.accounts.UsernameExists(ctx, username)
	if err != nil {
		return false, "", err
	}
	if exists {
		reclaimed, err := c.reclaimAbandoned(ctx, username)
		if err != nil {
			return false, "", err
		}
		if !reclaimed {
			return true, LogUsernameTaken, nil
		}
	}

	exists, err = c.accounts.EmailExists(ctx, canonEmail)
	if err != nil {
		return false, "", err
	}
	if exists {
		return true, LogEmailTaken, nil
	}

	exists, err = c.accounts.PhoneExists(ctx, phone)
	if err != nil {
		return false, "", err
	}
	if exists {
		return true, LogPhoneTaken, nil
	}

	return false, "", nil
}

func (c *AccountCoordinator) reclaimAbandoned(ctx context.Context, username string) (bool, error) {
	account, err := c.accounts.Get(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if !account.Pending() {
		return false, nil
	}
	if c.now().UTC().Sub(account.CreatedAt) <= PendingAccountMaxAge {
		return false, nil
	}

	if err := c.accounts.Delete(ctx, username); err != nil {
		return false, err
	}

	c.log.Info("reclaimed abandoned pending account", zap.String("username", username))

	return true, nil
}
