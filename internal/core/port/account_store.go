package port

import (
	"context"

	"github.com/grocify/account-guard/internal/core/domain"
)

// AccountStore defines the persistence operations the core needs for accounts.
// Implementations return repository.ErrNotFound for missing records and must
// reject an Update whose patch carries no fields.
type AccountStore interface {
	Get(ctx context.Context, username string) (*domain.Account, error)
	Create(ctx context.Context, account domain.Account) error
	Update(ctx context.Context, username string, patch domain.AccountPatch) error
	Delete(ctx context.Context, username string) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, canonicalEmail string) (bool, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
}
