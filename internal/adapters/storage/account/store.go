package account

import (
	"context"

	domain "greenaudit/internal/domain/account"
)

// Store defines the interface for account persistence.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Save(ctx context.Context, a domain.Account) error
	Count(ctx context.Context) (int, error)
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
