package orchestrators

import (
	"context"
	"log/slog"

	"greenaudit/internal/adapters/storage/auditrecord"
	"greenaudit/internal/domain/audit"
)

// RecordStoreForSave defines the store interface needed by the record write
// orchestrators.
type RecordStoreForSave interface {
	Save(ctx context.Context, auditID int64, rec audit.Record) auditrecord.SaveResult
	Update(ctx context.Context, auditID int64, rec audit.Record) error
}

// RegistryForSave defines the registry interface needed to check the parent
// audit exists before writing sections against it.
type RegistryForSave interface {
	GetByID(ctx context.Context, id int64) (audit.Audit, error)
}

// SaveRecordInput carries input for the save/update record orchestrators.
type SaveRecordInput struct {
	AuditID int64
	Record  audit.Record

	// AutoSave requests best-effort mode: validation messages become
	// informational and the write proceeds anyway.
	AutoSave bool
}

// SaveRecordDeps holds dependencies for the record write orchestrators.
type SaveRecordDeps struct {
	Registry    RegistryForSave
	RecordStore RecordStoreForSave
}

// SaveRecordResult reports the outcome of a record write.
type SaveRecordResult struct {
	Success  bool     `json:"success"`
	Errors   []string `json:"errors,omitempty"`   // rejection reasons (validation or storage)
	Warnings []string `json:"warnings,omitempty"` // informational messages in auto-save mode
}

// ExecuteSaveRecord performs a validated full-replace save.
//
// Full-save semantics: sections and metadata absent from the input are erased
// from storage. Incremental callers must use ExecuteUpdateRecord instead.
// PRE: AuditID refers to an existing audit
// POST: On success the stored record is exactly the input plus lastSaved
func ExecuteSaveRecord(ctx context.Context, input SaveRecordInput, deps SaveRecordDeps) SaveRecordResult {
	if _, err := deps.Registry.GetByID(ctx, input.AuditID); err != nil {
		return SaveRecordResult{Errors: []string{"audit not found"}}
	}

	violations := audit.ValidateRecord(input.Record)
	if len(violations) > 0 && !input.AutoSave {
		slog.Info("audit_event", "event", "record_rejected", "audit_id", input.AuditID, "violations", len(violations))
		return SaveRecordResult{Errors: violations}
	}

	res := deps.RecordStore.Save(ctx, input.AuditID, input.Record)
	if !res.Success {
		return SaveRecordResult{Errors: res.Errors}
	}
	return SaveRecordResult{Success: true, Warnings: violations}
}

// ExecuteUpdateRecord performs a validated partial merge: only the keys
// present in the input are written, unrelated keys are untouched.
// PRE: AuditID refers to an existing audit
// POST: On success the present keys are upserted plus a fresh lastSaved
func ExecuteUpdateRecord(ctx context.Context, input SaveRecordInput, deps SaveRecordDeps) SaveRecordResult {
	if _, err := deps.Registry.GetByID(ctx, input.AuditID); err != nil {
		return SaveRecordResult{Errors: []string{"audit not found"}}
	}

	violations := audit.ValidateRecord(input.Record)
	if len(violations) > 0 && !input.AutoSave {
		slog.Info("audit_event", "event", "record_rejected", "audit_id", input.AuditID, "violations", len(violations))
		return SaveRecordResult{Errors: violations}
	}

	if err := deps.RecordStore.Update(ctx, input.AuditID, input.Record); err != nil {
		return SaveRecordResult{Errors: []string{"failed to update audit record: " + err.Error()}}
	}
	return SaveRecordResult{Success: true, Warnings: violations}
}
