package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"greenaudit/internal/adapters/storage/auditrecord"
	"greenaudit/internal/domain/audit"
)

type fakeRegistry struct {
	audits map[int64]audit.Audit
}

func (f *fakeRegistry) GetByID(_ context.Context, id int64) (audit.Audit, error) {
	a, ok := f.audits[id]
	if !ok {
		return audit.Audit{}, errors.New("audit not found")
	}
	return a, nil
}

type fakeRecordStore struct {
	saved      map[int64]audit.Record
	updated    map[int64]audit.Record
	saveErrs   []string
	updateErr  error
	saveCalled int
}

func (f *fakeRecordStore) Save(_ context.Context, auditID int64, rec audit.Record) auditrecord.SaveResult {
	f.saveCalled++
	if len(f.saveErrs) > 0 {
		return auditrecord.SaveResult{Errors: f.saveErrs}
	}
	if f.saved == nil {
		f.saved = map[int64]audit.Record{}
	}
	f.saved[auditID] = rec
	return auditrecord.SaveResult{Success: true}
}

func (f *fakeRecordStore) Update(_ context.Context, auditID int64, rec audit.Record) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updated == nil {
		f.updated = map[int64]audit.Record{}
	}
	f.updated[auditID] = rec
	return nil
}

func saveDeps(reg *fakeRegistry, store *fakeRecordStore) SaveRecordDeps {
	return SaveRecordDeps{Registry: reg, RecordStore: store}
}

func knownAudit() *fakeRegistry {
	return &fakeRegistry{audits: map[int64]audit.Audit{
		7: {ID: 7, CentreName: "Riverside Hall", AuditDate: "2026-03-01", AuditorName: "A"},
	}}
}

// TestExecuteSaveRecord_Success verifies a valid record is written.
func TestExecuteSaveRecord_Success(t *testing.T) {
	store := &fakeRecordStore{}
	res := ExecuteSaveRecord(context.Background(), SaveRecordInput{
		AuditID: 7,
		Record:  audit.Record{OrganicWaste: &audit.OrganicWaste{HasKitchen: true}},
	}, saveDeps(knownAudit(), store))

	if !res.Success {
		t.Fatalf("result = %+v, want success", res)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
	if _, ok := store.saved[7]; !ok {
		t.Error("store.Save was not called for audit 7")
	}
}

// TestExecuteSaveRecord_UnknownAudit verifies the parent check runs before
// validation and storage.
func TestExecuteSaveRecord_UnknownAudit(t *testing.T) {
	store := &fakeRecordStore{}
	res := ExecuteSaveRecord(context.Background(), SaveRecordInput{AuditID: 99}, saveDeps(knownAudit(), store))

	if res.Success {
		t.Fatal("succeeded for an unknown audit")
	}
	if len(res.Errors) != 1 || res.Errors[0] != "audit not found" {
		t.Errorf("Errors = %v, want [audit not found]", res.Errors)
	}
	if store.saveCalled != 0 {
		t.Error("store.Save called despite unknown audit")
	}
}

// TestExecuteSaveRecord_ValidationRejects verifies invalid records are not
// written in normal mode.
func TestExecuteSaveRecord_ValidationRejects(t *testing.T) {
	store := &fakeRecordStore{}
	bad := audit.Record{
		WasteStreams: &audit.WasteStreams{
			Streams: []audit.WasteStream{{StreamType: audit.BinGeneral, ContaminationLevel: 9}},
		},
	}
	res := ExecuteSaveRecord(context.Background(), SaveRecordInput{AuditID: 7, Record: bad}, saveDeps(knownAudit(), store))

	if res.Success {
		t.Fatal("succeeded despite a validation violation")
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "contamination level") {
		t.Errorf("Errors = %v", res.Errors)
	}
	if store.saveCalled != 0 {
		t.Error("store.Save called despite rejection")
	}
}

// TestExecuteSaveRecord_AutoSaveDemotesViolations verifies auto-save mode
// writes anyway and reports violations as warnings.
func TestExecuteSaveRecord_AutoSaveDemotesViolations(t *testing.T) {
	store := &fakeRecordStore{}
	bad := audit.Record{
		WasteStreams: &audit.WasteStreams{
			Streams: []audit.WasteStream{{StreamType: audit.BinGeneral, ContaminationLevel: 9}},
		},
	}
	res := ExecuteSaveRecord(context.Background(), SaveRecordInput{
		AuditID: 7, Record: bad, AutoSave: true,
	}, saveDeps(knownAudit(), store))

	if !res.Success {
		t.Fatalf("auto-save failed: %+v", res)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("Warnings = %v, want the violation", res.Warnings)
	}
	if _, ok := store.saved[7]; !ok {
		t.Error("auto-save did not write the record")
	}
}

// TestExecuteSaveRecord_StorageFailure verifies store errors surface.
func TestExecuteSaveRecord_StorageFailure(t *testing.T) {
	store := &fakeRecordStore{saveErrs: []string{"failed to save audit record: disk full"}}
	res := ExecuteSaveRecord(context.Background(), SaveRecordInput{AuditID: 7}, saveDeps(knownAudit(), store))

	if res.Success {
		t.Fatal("succeeded despite storage failure")
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "disk full") {
		t.Errorf("Errors = %v", res.Errors)
	}
}

// TestExecuteUpdateRecord verifies the merge path: existence check,
// validation, and the store error message shape.
func TestExecuteUpdateRecord(t *testing.T) {
	store := &fakeRecordStore{}
	patch := audit.Record{BehaviourTraining: &audit.BehaviourTraining{WasteChampionAppointed: true}}

	res := ExecuteUpdateRecord(context.Background(), SaveRecordInput{AuditID: 7, Record: patch}, saveDeps(knownAudit(), store))
	if !res.Success {
		t.Fatalf("result = %+v, want success", res)
	}
	if _, ok := store.updated[7]; !ok {
		t.Error("store.Update was not called")
	}

	res = ExecuteUpdateRecord(context.Background(), SaveRecordInput{AuditID: 99, Record: patch}, saveDeps(knownAudit(), store))
	if res.Success || len(res.Errors) != 1 || res.Errors[0] != "audit not found" {
		t.Errorf("unknown audit result = %+v", res)
	}

	failing := &fakeRecordStore{updateErr: errors.New("locked")}
	res = ExecuteUpdateRecord(context.Background(), SaveRecordInput{AuditID: 7, Record: patch}, saveDeps(knownAudit(), failing))
	if res.Success || !strings.Contains(res.Errors[0], "failed to update audit record") {
		t.Errorf("storage failure result = %+v", res)
	}
}
