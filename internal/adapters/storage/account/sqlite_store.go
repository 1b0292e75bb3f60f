package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"greenaudit/internal/adapters/storage"
	domain "greenaudit/internal/domain/account"
)

const timeLayout = time.RFC3339

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new account store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Account by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, role, created_at FROM account WHERE id = ?", id)
	a, err := scanAccount(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	return a, err
}

// GetByEmail retrieves an Account by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, role, created_at FROM account WHERE email = ?", email)
	a, err := scanAccount(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	return a, err
}

// Save persists an Account (insert or update by ID).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, a domain.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO account (id, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			password_hash = excluded.password_hash,
			role = excluded.role`,
		a.ID, a.Email, a.PasswordHash, a.Role, a.CreatedAt.UTC().Format(timeLayout))
	return err
}

// Count returns the number of accounts.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account").Scan(&n)
	return n, err
}

// scanAccount scans one account row.
func scanAccount(scan func(dest ...any) error) (domain.Account, error) {
	var a domain.Account
	var createdAt string
	if err := scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &createdAt); err != nil {
		return domain.Account{}, err
	}
	a.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return a, nil
}
