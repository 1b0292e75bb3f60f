package images

import (
	"context"
	"time"

	"greenaudit/internal/adapters/storage"
)

const timeLayout = time.RFC3339

// SQLiteStore implements Store over the images table.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new image metadata store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Add inserts one image row and returns its ID.
// PRE: img.AuditID refers to an existing audit; img.ImagePath is non-empty
// POST: Row persisted with the upload timestamp
func (s *SQLiteStore) Add(ctx context.Context, img Image) (int64, error) {
	uploadedAt := img.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO images (audit_id, related_item, image_path, uploaded_at) VALUES (?, ?, ?, ?)",
		img.AuditID, img.RelatedItem, img.ImagePath, uploadedAt.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListByAudit returns all images for an audit, oldest first.
func (s *SQLiteStore) ListByAudit(ctx context.Context, auditID int64) ([]Image, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, audit_id, related_item, image_path, uploaded_at FROM images WHERE audit_id = ? ORDER BY id",
		auditID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Image
	for rows.Next() {
		var img Image
		var uploadedAt string
		if err := rows.Scan(&img.ID, &img.AuditID, &img.RelatedItem, &img.ImagePath, &uploadedAt); err != nil {
			return nil, err
		}
		img.UploadedAt, _ = time.Parse(timeLayout, uploadedAt)
		out = append(out, img)
	}
	return out, rows.Err()
}

// DeleteByAudit removes all image rows for an audit.
// POST: Unknown IDs succeed without error
func (s *SQLiteStore) DeleteByAudit(ctx context.Context, auditID int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM images WHERE audit_id = ?", auditID)
	return err
}
