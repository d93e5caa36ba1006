package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/core/port"
	"github.com/grocify/account-guard/internal/repository"
)

type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const accountsTable = "guard.accounts"

var accountColumns = []string{
	"username",
	"email",
	"phone",
	"password_digest",
	"status",
	"login_failures",
	"last_login_failure",
	"email_code_failures",
	"phone_code_failures",
	"verification_code",
	"code_issued_at",
	"created_at",
}

// AccountRepository implements port.AccountStore backed by PostgreSQL.
type AccountRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewAccountRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewAccountRepository(exec pgExecutor) *AccountRepository {
	return &AccountRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get retrieves an account by username.
func (r *AccountRepository) Get(ctx context.Context, username string) (*domain.Account, error) {
	stmt, args, err := r.builder.
		Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)

	var account domain.Account
	if err := row.Scan(
		&account.Username,
		&account.Email,
		&account.Phone,
		&account.PasswordDigest,
		&account.Status,
		&account.LoginFailures,
		&account.LastLoginFailure,
		&account.EmailCodeFailures,
		&account.PhoneCodeFailures,
		&account.VerificationCode,
		&account.CodeIssuedAt,
		&account.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	return &account, nil
}

// Create inserts a new account row.
func (r *AccountRepository) Create(ctx context.Context, account domain.Account) error {
	stmt, args, err := r.builder.Insert(accountsTable).
		Columns(accountColumns...).
		Values(
			account.Username,
			account.Email,
			account.Phone,
			account.PasswordDigest,
			account.Status,
			account.LoginFailures,
			account.LastLoginFailure,
			account.EmailCodeFailures,
			account.PhoneCodeFailures,
			account.VerificationCode,
			account.CodeIssuedAt,
			account.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert account sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

// Update applies a partial update. Only the patch's non-nil fields are
// written; a patch with no fields is rejected rather than silently ignored.
func (r *AccountRepository) Update(ctx context.Context, username string, patch domain.AccountPatch) error {
	if patch.IsEmpty() {
		return repository.ErrEmptyPatch
	}

	assignments := map[string]any{}
	if patch.Email != nil {
		assignments["email"] = *patch.Email
	}
	if patch.Phone != nil {
		assignments["phone"] = *patch.Phone
	}
	if patch.PasswordDigest != nil {
		assignments["password_digest"] = *patch.PasswordDigest
	}
	if patch.Status != nil {
		assignments["status"] = *patch.Status
	}
	if patch.LoginFailures != nil {
		assignments["login_failures"] = *patch.LoginFailures
	}
	if patch.LastLoginFailure != nil {
		assignments["last_login_failure"] = *patch.LastLoginFailure
	}
	if patch.EmailCodeFailures != nil {
		assignments["email_code_failures"] = *patch.EmailCodeFailures
	}
	if patch.PhoneCodeFailures != nil {
		assignments["phone_code_failures"] = *patch.PhoneCodeFailures
	}
	if patch.VerificationCode != nil {
		assignments["verification_code"] = *patch.VerificationCode
	}
	if patch.CodeIssuedAt != nil {
		assignments["code_issued_at"] = *patch.CodeIssuedAt
	}

	stmt, args, err := r.builder.Update(accountsTable).
		SetMap(assignments).
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update account sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes an account row.
func (r *AccountRepository) Delete(ctx context.Context, username string) error {
	stmt, args, err := r.builder.Delete(accountsTable).
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete account sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UsernameExists reports whether the username is already registered.
func (r *AccountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"username": username})
}

// EmailExists reports whether the canonical email is already registered.
func (r *AccountRepository) EmailExists(ctx context.Context, canonicalEmail string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"email": canonicalEmail})
}

// PhoneExists reports whether the phone number is already registered.
func (r *AccountRepository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"phone": phone})
}

func (r *AccountRepository) exists(ctx context.Context, pred squirrel.Eq) (bool, error) {
	stmt, args, err := r.builder.Select("COUNT(*)").
		From(accountsTable).
		Where(pred).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists sql: %w", err)
	}

	var count int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("scan exists count: %w", err)
	}

	return count > 0, nil
}

var _ port.AccountStore = (*AccountRepository)(nil)
