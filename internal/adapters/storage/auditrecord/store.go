package auditrecord

import (
	"context"
	"errors"

	"greenaudit/internal/domain/audit"
)

// ErrNotFound is returned by Get when no entries exist for the audit ID.
// It is a normal outcome, not a fault.
var ErrNotFound = errors.New("audit record not found")

// SaveResult reports the outcome of a full-replace save.
type SaveResult struct {
	Success bool
	Errors  []string // human-readable messages, present only on failure
}

// Summary is one row of a record listing, joined with the audit identity.
type Summary struct {
	AuditID           int64            `json:"auditId"`
	CentreName        string           `json:"centreName"`
	AuditDate         string           `json:"auditDate"`
	AuditorName       string           `json:"auditorName"`
	CompletedSections int              `json:"completedSections"` // 0 when absent or unparsable
	LastModified      string           `json:"lastModified"`      // lastSaved entry, else audit creation time
	SyncStatus        audit.SyncStatus `json:"syncStatus"`        // syncStatus entry, else offline
}

// Stats holds aggregate counts over all stored records.
type Stats struct {
	TotalAudits       int     `json:"totalAudits"`       // distinct audit IDs with at least one entry
	CompletedAudits   int     `json:"completedAudits"`   // completedSections metadata equal to 6
	AverageCompletion float64 `json:"averageCompletion"` // mean of present completedSections, 0 if none
	AuditsWithPhotos  int     `json:"auditsWithPhotos"`  // distinct audit IDs with at least one image
}

// Store persists audit records in the entity-attribute-value table.
//
// Save and Update are two deliberately different write paths on the same
// entity: Save replaces the whole record (entries omitted from the input are
// erased), Update merges only the keys present in the input. Callers wanting
// merge semantics must use Update.
type Store interface {
	// Save fully replaces the record for auditID: all prior entries are
	// deleted, then one entry is written per present section and metadata
	// field, plus a fresh lastSaved timestamp. Atomic.
	// PRE: auditID refers to an existing audit
	// POST: Stored entries are exactly the input's present keys plus lastSaved
	Save(ctx context.Context, auditID int64, rec audit.Record) SaveResult

	// Update upserts one entry per key present in the partial record, leaving
	// unrelated keys untouched, plus a fresh lastSaved timestamp. Atomic and
	// idempotent (last write wins per key).
	// PRE: auditID refers to an existing audit
	// POST: Present keys are upserted; absent keys are untouched
	Update(ctx context.Context, auditID int64, rec audit.Record) error

	// Get reconstructs the record from its entries. A section that fails to
	// decode is logged and omitted; the rest of the record is still returned.
	// PRE: none
	// POST: Returns ErrNotFound when no entries exist for auditID
	Get(ctx context.Context, auditID int64) (audit.Record, error)

	// Exists reports whether at least one entry exists for auditID.
	Exists(ctx context.Context, auditID int64) (bool, error)

	// Delete removes all entries and image metadata for auditID. Deleting an
	// unknown ID is a no-op success.
	Delete(ctx context.Context, auditID int64) error

	// ListAll returns summaries for every audit, ordered by audit date
	// descending then creation time descending.
	ListAll(ctx context.Context) ([]Summary, error)

	// ListByCentre returns summaries filtered by exact centre name, in the
	// same order as ListAll.
	ListByCentre(ctx context.Context, centreName string) ([]Summary, error)

	// Stats returns aggregate counts over all stored records.
	Stats(ctx context.Context) (Stats, error)
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
