package registry

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"greenaudit/internal/adapters/storage"
	"greenaudit/internal/domain/audit"
)

const timeLayout = time.RFC3339

// SQLiteStore implements Store over the audits table.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new audit registry store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a new audit and returns its assigned ID.
// PRE: a has been validated
// POST: Returns the autoincrement ID of the new row
func (s *SQLiteStore) Create(ctx context.Context, a audit.Audit) (int64, error) {
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO audits (centre_name, audit_date, auditor_name, created_at) VALUES (?, ?, ?, ?)",
		a.CentreName, a.AuditDate, a.AuditorName, createdAt.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID retrieves one audit.
// POST: Returns ErrNotFound when no row exists
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (audit.Audit, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, centre_name, audit_date, auditor_name, created_at FROM audits WHERE id = ?", id)
	a, err := scanAudit(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return audit.Audit{}, ErrNotFound
	}
	return a, err
}

// List returns all audits, newest audit date first.
func (s *SQLiteStore) List(ctx context.Context) ([]audit.Audit, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, centre_name, audit_date, auditor_name, created_at FROM audits ORDER BY audit_date DESC, created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []audit.Audit
	for rows.Next() {
		a, err := scanAudit(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes an audit; children cascade.
// POST: Unknown IDs succeed without error
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM audits WHERE id = ?", id)
	return err
}

// scanAudit scans one audits row. An unparseable created_at degrades to the
// zero time rather than failing the read.
func scanAudit(scan func(dest ...any) error) (audit.Audit, error) {
	var a audit.Audit
	var createdAt string
	if err := scan(&a.ID, &a.CentreName, &a.AuditDate, &a.AuditorName, &createdAt); err != nil {
		return audit.Audit{}, err
	}
	parsed, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		slog.Warn("created_at_parse_failed", "audit_id", a.ID, "value", createdAt, "error", err.Error())
	}
	a.CreatedAt = parsed
	return a, nil
}
