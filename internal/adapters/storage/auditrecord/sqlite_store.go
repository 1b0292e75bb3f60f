package auditrecord

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"greenaudit/internal/adapters/storage"
	"greenaudit/internal/domain/audit"
)

const timeLayout = time.RFC3339

// SQLiteStore implements Store over the waste_data EAV table.
type SQLiteStore struct {
	db  storage.SQLDB
	now func() time.Time
}

// NewSQLiteStore creates a new audit record store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Save fully replaces the record for auditID in a single transaction.
// PRE: auditID refers to an existing audit
// POST: Stored entries are exactly the input's present keys plus lastSaved
func (s *SQLiteStore) Save(ctx context.Context, auditID int64, rec audit.Record) SaveResult {
	err := s.save(ctx, auditID, rec)
	if err != nil {
		slog.Error("record_save_failed", "audit_id", auditID, "error", err.Error())
		return SaveResult{Errors: []string{"failed to save audit record: " + err.Error()}}
	}
	slog.Info("record_saved", "audit_id", auditID)
	return SaveResult{Success: true}
}

func (s *SQLiteStore) save(ctx context.Context, auditID int64, rec audit.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Full replace: clear every prior entry, then write only what the input
	// carries. Sections omitted from a partial input are therefore erased;
	// callers wanting merge semantics must use Update.
	if _, err := tx.ExecContext(ctx, "DELETE FROM waste_data WHERE audit_id = ?", auditID); err != nil {
		return err
	}

	for _, key := range audit.SectionKeys {
		payload, present := sectionValue(rec, key)
		if !present {
			continue
		}
		text, err := encodeSection(payload)
		if err != nil {
			return err
		}
		if err := insertEntry(ctx, tx, auditID, key, text); err != nil {
			return err
		}
	}

	if rec.CompletedSections != nil {
		if err := insertEntry(ctx, tx, auditID, audit.KeyCompletedSections, encodeInt(*rec.CompletedSections)); err != nil {
			return err
		}
	}
	if rec.IsQuickMode != nil {
		if err := insertEntry(ctx, tx, auditID, audit.KeyIsQuickMode, encodeBool(*rec.IsQuickMode)); err != nil {
			return err
		}
	}
	if rec.SyncStatus != "" {
		if err := insertEntry(ctx, tx, auditID, audit.KeySyncStatus, string(rec.SyncStatus)); err != nil {
			return err
		}
	}
	if err := insertEntry(ctx, tx, auditID, audit.KeyLastSaved, s.now().UTC().Format(timeLayout)); err != nil {
		return err
	}

	return tx.Commit()
}

// Update upserts only the keys present in the partial record.
// PRE: auditID refers to an existing audit
// POST: Present keys are upserted; absent keys are untouched
func (s *SQLiteStore) Update(ctx context.Context, auditID int64, rec audit.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, key := range audit.SectionKeys {
		payload, present := sectionValue(rec, key)
		if !present {
			continue
		}
		text, err := encodeSection(payload)
		if err != nil {
			return err
		}
		if err := upsertEntry(ctx, tx, auditID, key, text); err != nil {
			return err
		}
	}

	if rec.CompletedSections != nil {
		if err := upsertEntry(ctx, tx, auditID, audit.KeyCompletedSections, encodeInt(*rec.CompletedSections)); err != nil {
			return err
		}
	}
	if rec.IsQuickMode != nil {
		if err := upsertEntry(ctx, tx, auditID, audit.KeyIsQuickMode, encodeBool(*rec.IsQuickMode)); err != nil {
			return err
		}
	}
	if rec.SyncStatus != "" {
		if err := upsertEntry(ctx, tx, auditID, audit.KeySyncStatus, string(rec.SyncStatus)); err != nil {
			return err
		}
	}
	if err := upsertEntry(ctx, tx, auditID, audit.KeyLastSaved, s.now().UTC().Format(timeLayout)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("record_updated", "audit_id", auditID)
	return nil
}

// insertEntry writes one EAV row.
func insertEntry(ctx context.Context, tx *sql.Tx, auditID int64, key, value string) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO waste_data (audit_id, item_key, response) VALUES (?, ?, ?)",
		auditID, key, value)
	return err
}

// upsertEntry replaces the single row for (auditID, key), inserting if absent.
// The one-entry-per-key invariant is enforced here, not by a table constraint,
// so all writes must go through the store.
func upsertEntry(ctx context.Context, tx *sql.Tx, auditID int64, key, value string) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE waste_data SET response = ? WHERE audit_id = ? AND item_key = ?",
		value, auditID, key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return insertEntry(ctx, tx, auditID, key, value)
	}
	return nil
}

// Get reconstructs the record from its entries.
// Sections that fail to decode are logged and omitted (one malformed section
// must not prevent retrieval of the others). Corrupt integer metadata is an
// error. Unknown item keys are silently ignored for forward compatibility.
// PRE: none
// POST: Returns ErrNotFound when no entries exist for auditID
func (s *SQLiteStore) Get(ctx context.Context, auditID int64) (audit.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT item_key, response FROM waste_data WHERE audit_id = ?", auditID)
	if err != nil {
		slog.Error("record_read_failed", "audit_id", auditID, "error", err.Error())
		return audit.Record{}, ErrNotFound
	}
	defer rows.Close()

	var rec audit.Record
	found := false
	for rows.Next() {
		var key string
		var response sql.NullString
		if err := rows.Scan(&key, &response); err != nil {
			return audit.Record{}, fmt.Errorf("failed to scan entry: %w", err)
		}
		found = true
		value := response.String

		if handled, err := decodeSection(&rec, key, value); handled {
			if err != nil {
				slog.Warn("section_decode_failed", "audit_id", auditID, "item_key", key, "error", err.Error())
			}
			continue
		}

		switch key {
		case audit.KeyCompletedSections:
			n, err := decodeInt(value)
			if err != nil {
				return audit.Record{}, fmt.Errorf("entry %s: %w", key, err)
			}
			rec.CompletedSections = &n
		case audit.KeyIsQuickMode:
			b := decodeBool(value)
			rec.IsQuickMode = &b
		case audit.KeyLastSaved:
			rec.LastSaved = value
		case audit.KeySyncStatus:
			// Stored verbatim and decoded as-is; values are re-validated at
			// the record-construction boundary, not here.
			rec.SyncStatus = audit.SyncStatus(value)
		}
	}
	if err := rows.Err(); err != nil {
		slog.Error("record_read_failed", "audit_id", auditID, "error", err.Error())
		return audit.Record{}, ErrNotFound
	}
	if !found {
		return audit.Record{}, ErrNotFound
	}
	return rec, nil
}

// Exists reports whether at least one entry exists for auditID.
func (s *SQLiteStore) Exists(ctx context.Context, auditID int64) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM waste_data WHERE audit_id = ?", auditID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes all entries and image metadata for auditID.
// PRE: none
// POST: No waste_data or images rows remain for auditID; unknown IDs succeed
func (s *SQLiteStore) Delete(ctx context.Context, auditID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM waste_data WHERE audit_id = ?", auditID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM images WHERE audit_id = ?", auditID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("record_deleted", "audit_id", auditID)
	return nil
}

const listQuery = `
	SELECT a.id, a.centre_name, a.audit_date, a.auditor_name, a.created_at,
		(SELECT response FROM waste_data w WHERE w.audit_id = a.id AND w.item_key = 'completedSections'),
		(SELECT response FROM waste_data w WHERE w.audit_id = a.id AND w.item_key = 'lastSaved'),
		(SELECT response FROM waste_data w WHERE w.audit_id = a.id AND w.item_key = 'syncStatus')
	FROM audits a`

const listOrder = " ORDER BY a.audit_date DESC, a.created_at DESC"

// ListAll returns summaries for every audit, newest audit date first.
// Storage faults degrade to an empty list: listings feed a UI that should
// never hard-fail.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]Summary, error) {
	return s.list(ctx, listQuery+listOrder)
}

// ListByCentre returns summaries filtered by exact centre name.
func (s *SQLiteStore) ListByCentre(ctx context.Context, centreName string) ([]Summary, error) {
	return s.list(ctx, listQuery+" WHERE a.centre_name = ?"+listOrder, centreName)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Error("record_list_failed", "error", err.Error())
		return []Summary{}, nil
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sum Summary
		var createdAt string
		var completed, lastSaved, syncStatus sql.NullString
		if err := rows.Scan(&sum.AuditID, &sum.CentreName, &sum.AuditDate, &sum.AuditorName, &createdAt, &completed, &lastSaved, &syncStatus); err != nil {
			slog.Error("record_list_failed", "error", err.Error())
			return []Summary{}, nil
		}
		if completed.Valid {
			if n, err := decodeInt(completed.String); err == nil {
				sum.CompletedSections = n
			}
		}
		if lastSaved.Valid && lastSaved.String != "" {
			sum.LastModified = lastSaved.String
		} else {
			sum.LastModified = createdAt
		}
		if syncStatus.Valid && syncStatus.String != "" {
			sum.SyncStatus = audit.SyncStatus(syncStatus.String)
		} else {
			sum.SyncStatus = audit.SyncOffline
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		slog.Error("record_list_failed", "error", err.Error())
		return []Summary{}, nil
	}
	return out, nil
}

// Stats returns aggregate counts over all stored records.
// Storage faults degrade to zero values.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT audit_id) FROM waste_data").Scan(&st.TotalAudits)
	if err != nil {
		slog.Error("record_stats_failed", "error", err.Error())
		return Stats{}, nil
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM waste_data WHERE item_key = ? AND CAST(response AS INTEGER) = 6",
		audit.KeyCompletedSections).Scan(&st.CompletedAudits)
	if err != nil {
		slog.Error("record_stats_failed", "error", err.Error())
		return Stats{}, nil
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COALESCE(AVG(CAST(response AS REAL)), 0) FROM waste_data WHERE item_key = ?",
		audit.KeyCompletedSections).Scan(&st.AverageCompletion)
	if err != nil {
		slog.Error("record_stats_failed", "error", err.Error())
		return Stats{}, nil
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT audit_id) FROM images").Scan(&st.AuditsWithPhotos)
	if err != nil {
		slog.Error("record_stats_failed", "error", err.Error())
		return Stats{}, nil
	}

	return st, nil
}
