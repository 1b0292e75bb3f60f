package registry

import (
	"context"
	"errors"

	"greenaudit/internal/domain/audit"
)

// ErrNotFound is returned when no audit exists for the given ID.
var ErrNotFound = errors.New("audit not found")

// Store persists the parent audit identity records. Section data is owned by
// the auditrecord store and only foreign-keyed against these rows.
type Store interface {
	// Create inserts a new audit and returns its assigned ID.
	// PRE: a has been validated; a.ID is ignored
	// POST: Returns the autoincrement ID of the new row
	Create(ctx context.Context, a audit.Audit) (int64, error)

	// GetByID retrieves one audit.
	// POST: Returns ErrNotFound when no row exists
	GetByID(ctx context.Context, id int64) (audit.Audit, error)

	// List returns all audits, newest audit date first.
	List(ctx context.Context) ([]audit.Audit, error)

	// Delete removes an audit. Child waste_data, water_data and images rows
	// go with it via foreign-key cascade. Unknown IDs succeed.
	Delete(ctx context.Context, id int64) error
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
