package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"greenaudit/internal/domain/audit"
)

type fakeCreatingRegistry struct {
	created []audit.Audit
	err     error
}

func (f *fakeCreatingRegistry) Create(_ context.Context, a audit.Audit) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.created = append(f.created, a)
	return int64(len(f.created)), nil
}

// TestExecuteCreateAudit_Success verifies validation passes through to the
// registry and the new ID is returned.
func TestExecuteCreateAudit_Success(t *testing.T) {
	reg := &fakeCreatingRegistry{}
	id, err := ExecuteCreateAudit(context.Background(), CreateAuditInput{
		CentreName:  "Riverside Hall",
		AuditDate:   "2026-03-01",
		AuditorName: "S. Nolan",
	}, CreateAuditDeps{Registry: reg})
	if err != nil {
		t.Fatalf("ExecuteCreateAudit: %v", err)
	}
	if id != 1 {
		t.Errorf("id = %d, want 1", id)
	}
	if len(reg.created) != 1 || reg.created[0].CentreName != "Riverside Hall" {
		t.Errorf("created = %+v", reg.created)
	}
	if reg.created[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not assigned")
	}
}

// TestExecuteCreateAudit_DefaultsDateToToday verifies an empty date uses the
// injected clock.
func TestExecuteCreateAudit_DefaultsDateToToday(t *testing.T) {
	reg := &fakeCreatingRegistry{}
	now := func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }

	_, err := ExecuteCreateAudit(context.Background(), CreateAuditInput{
		CentreName:  "Riverside Hall",
		AuditorName: "S. Nolan",
	}, CreateAuditDeps{Registry: reg, Now: now})
	if err != nil {
		t.Fatalf("ExecuteCreateAudit: %v", err)
	}
	if got := reg.created[0].AuditDate; got != "2026-03-14" {
		t.Errorf("AuditDate = %q, want 2026-03-14", got)
	}
}

// TestExecuteCreateAudit_Invalid verifies validation failures never reach the
// registry.
func TestExecuteCreateAudit_Invalid(t *testing.T) {
	reg := &fakeCreatingRegistry{}
	_, err := ExecuteCreateAudit(context.Background(), CreateAuditInput{
		AuditorName: "S. Nolan",
	}, CreateAuditDeps{Registry: reg})
	if !errors.Is(err, audit.ErrEmptyCentreName) {
		t.Errorf("err = %v, want ErrEmptyCentreName", err)
	}
	if len(reg.created) != 0 {
		t.Error("registry called despite validation failure")
	}
}

// TestExecuteCreateAudit_RegistryFailure verifies storage errors surface.
func TestExecuteCreateAudit_RegistryFailure(t *testing.T) {
	reg := &fakeCreatingRegistry{err: errors.New("locked")}
	_, err := ExecuteCreateAudit(context.Background(), CreateAuditInput{
		CentreName:  "Riverside Hall",
		AuditorName: "S. Nolan",
	}, CreateAuditDeps{Registry: reg})
	if err == nil {
		t.Error("err = nil, want the registry error")
	}
}
