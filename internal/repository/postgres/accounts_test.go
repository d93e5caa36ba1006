package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/repository"
)

func TestAccountRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	createdAt := time.Now().UTC()
	account := domain.Account{
		Username:       "alice",
		Email:          "alice@example.com",
		Phone:          "5551234567",
		PasswordDigest: "digest",
		Status:         domain.AccountStatusPendingEmail,
		CreatedAt:      createdAt,
	}

	mock.ExpectExec(`INSERT INTO guard\.accounts`).
		WithArgs(
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
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	createdAt := time.Now().UTC()
	rows := pgxmock.NewRows(accountColumns).AddRow(
		"alice",
		"alice@example.com",
		"5551234567",
		"digest",
		domain.AccountStatusActive,
		2,
		int64(1700000000),
		0,
		0,
		"",
		int64(0),
		createdAt,
	)

	mock.ExpectQuery(`SELECT .+ FROM guard\.accounts`).
		WithArgs("alice").
		WillReturnRows(rows)

	account, err := repo.Get(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if account.Username != "alice" {
		t.Fatalf("expected username alice, got %s", account.Username)
	}
	if account.Status != domain.AccountStatusActive {
		t.Fatalf("expected active status, got %s", account.Status)
	}
	if account.LoginFailures != 2 {
		t.Fatalf("expected 2 login failures, got %d", account.LoginFailures)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_GetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM guard\.accounts`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.Get(context.Background(), "ghost"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountRepository_UpdateSingleField(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	mock.ExpectExec(`UPDATE guard\.accounts SET status = \$1 WHERE username = \$2`).
		WithArgs(domain.AccountStatusDisabled, "alice").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	patch := domain.AccountPatch{Status: domain.Ptr(domain.AccountStatusDisabled)}
	if err := repo.Update(context.Background(), "alice", patch); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_UpdateEmptyPatch(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	if err := repo.Update(context.Background(), "alice", domain.AccountPatch{}); !errors.Is(err, repository.ErrEmptyPatch) {
		t.Fatalf("expected ErrEmptyPatch, got %v", err)
	}
}

func TestAccountRepository_UpdateMissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	mock.ExpectExec(`UPDATE guard\.accounts`).
		WithArgs(domain.AccountStatusActive, "ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	patch := domain.AccountPatch{Status: domain.Ptr(domain.AccountStatusActive)}
	if err := repo.Update(context.Background(), "ghost", patch); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountRepository_UsernameExists(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM guard\.accounts`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))

	exists, err := repo.UsernameExists(context.Background(), "alice")
	if err != nil {
		t.Fatalf("UsernameExists returned error: %v", err)
	}
	if !exists {
		t.Fatalf("expected username to exist")
	}
}

func TestAccountRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	mock.ExpectExec(`DELETE FROM guard\.accounts`).
		WithArgs("alice").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := repo.Delete(context.Background(), "alice"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
