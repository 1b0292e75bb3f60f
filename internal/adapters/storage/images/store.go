package images

import (
	"context"
	"time"
)

// Image is one uploaded photo's metadata. The file itself lives on disk under
// the upload directory; only the path is stored.
type Image struct {
	ID          int64     `json:"id"`
	AuditID     int64     `json:"auditId"`
	RelatedItem string    `json:"relatedItem"` // item key the photo illustrates, may be empty
	ImagePath   string    `json:"imagePath"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// Store persists image metadata rows.
type Store interface {
	// Add inserts one image row and returns its ID.
	Add(ctx context.Context, img Image) (int64, error)

	// ListByAudit returns all images for an audit, oldest first.
	ListByAudit(ctx context.Context, auditID int64) ([]Image, error)

	// DeleteByAudit removes all image rows for an audit. Unknown IDs succeed.
	DeleteByAudit(ctx context.Context, auditID int64) error
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
