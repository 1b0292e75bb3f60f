package audit

import (
	"errors"
	"strings"
	"testing"
)

// TestAuditValidate_Valid verifies a well-formed audit passes.
func TestAuditValidate_Valid(t *testing.T) {
	a := Audit{
		CentreName:  "Ballymun Community Centre",
		AuditDate:   "2026-03-14",
		AuditorName: "S. Nolan",
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

// TestAuditValidate_RequiredFields verifies each blank or whitespace-only
// field produces its own error.
func TestAuditValidate_RequiredFields(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Audit)
		wantErr error
	}{
		{"empty centre name", func(a *Audit) { a.CentreName = "" }, ErrEmptyCentreName},
		{"whitespace centre name", func(a *Audit) { a.CentreName = "   " }, ErrEmptyCentreName},
		{"empty audit date", func(a *Audit) { a.AuditDate = "" }, ErrEmptyAuditDate},
		{"empty auditor name", func(a *Audit) { a.AuditorName = "\t" }, ErrEmptyAuditorName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := Audit{CentreName: "Centre", AuditDate: "2026-01-01", AuditorName: "A"}
			tc.mutate(&a)
			if err := a.Validate(); !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// TestAuditValidate_MaxLengths verifies the 200 character limits.
func TestAuditValidate_MaxLengths(t *testing.T) {
	long := strings.Repeat("x", MaxCentreNameLength+1)

	a := Audit{CentreName: long, AuditDate: "2026-01-01", AuditorName: "A"}
	if err := a.Validate(); err == nil {
		t.Error("Validate() = nil for over-long centre name, want error")
	}

	a = Audit{CentreName: "Centre", AuditDate: "2026-01-01", AuditorName: long}
	if err := a.Validate(); err == nil {
		t.Error("Validate() = nil for over-long auditor name, want error")
	}

	exact := strings.Repeat("x", MaxCentreNameLength)
	a = Audit{CentreName: exact, AuditDate: "2026-01-01", AuditorName: "A"}
	if err := a.Validate(); err != nil {
		t.Errorf("Validate() = %v for exactly 200 characters, want nil", err)
	}
}

// TestValidateRecord_Empty verifies an empty record is acceptable.
func TestValidateRecord_Empty(t *testing.T) {
	if errs := ValidateRecord(Record{}); len(errs) != 0 {
		t.Errorf("ValidateRecord(empty) = %v, want no errors", errs)
	}
}

// TestValidateRecord_BinConstraints verifies bin capacity and signage checks.
func TestValidateRecord_BinConstraints(t *testing.T) {
	r := Record{
		FacilityInfrastructure: &FacilityInfrastructure{
			Bins: []Bin{
				{BinType: BinGeneral, CapacityLitres: -1},
				{BinType: BinGeneral, SignageQuality: 6},
				{BinType: BinGeneral, SignageQuality: 0}, // unrated is fine
			},
		},
	}
	errs := ValidateRecord(r)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0], "bin 1") {
		t.Errorf("errs[0] = %q, want a bin 1 message", errs[0])
	}
	if !strings.Contains(errs[1], "bin 2") {
		t.Errorf("errs[1] = %q, want a bin 2 message", errs[1])
	}
}

// TestValidateRecord_StreamConstraints verifies waste stream range checks.
func TestValidateRecord_StreamConstraints(t *testing.T) {
	r := Record{
		WasteStreams: &WasteStreams{
			Streams: []WasteStream{
				{StreamType: BinGeneral, EstimatedWeeklyVolumeLitres: -5, AnnualCostEuros: -1, ContaminationLevel: 9},
			},
		},
	}
	errs := ValidateRecord(r)
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(errs), errs)
	}
}

// TestValidateRecord_MeasureStatuses verifies unknown statuses are rejected
// and the four known ones pass.
func TestValidateRecord_MeasureStatuses(t *testing.T) {
	ok := Record{
		PreventionMeasures: &PreventionMeasures{
			Statuses: map[string]MeasureStatus{
				MeasureReusableCups:   MeasureFull,
				MeasureRepairCafe:     MeasureNotImplemented,
				MeasureDonationScheme: MeasurePlanned,
			},
		},
	}
	if errs := ValidateRecord(ok); len(errs) != 0 {
		t.Errorf("got %v, want no errors", errs)
	}

	bad := Record{
		PreventionMeasures: &PreventionMeasures{
			Statuses: map[string]MeasureStatus{
				MeasureReusableCups: "almost",
			},
		},
	}
	errs := ValidateRecord(bad)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0], "unknown status") {
		t.Errorf("errs[0] = %q, want unknown status message", errs[0])
	}
}

// TestValidateRecord_CompletedSectionsRange verifies the 0..6 bound.
func TestValidateRecord_CompletedSectionsRange(t *testing.T) {
	for _, n := range []int{0, 3, 6} {
		n := n
		if errs := ValidateRecord(Record{CompletedSections: &n}); len(errs) != 0 {
			t.Errorf("CompletedSections=%d: got %v, want no errors", n, errs)
		}
	}
	for _, n := range []int{-1, 7} {
		n := n
		if errs := ValidateRecord(Record{CompletedSections: &n}); len(errs) != 1 {
			t.Errorf("CompletedSections=%d: got %d errors, want 1", n, len(errs))
		}
	}
}

// TestValidateRecord_SyncStatus verifies the sync status whitelist. An empty
// status is allowed and means unset.
func TestValidateRecord_SyncStatus(t *testing.T) {
	for _, s := range ValidSyncStatuses {
		if errs := ValidateRecord(Record{SyncStatus: s}); len(errs) != 0 {
			t.Errorf("SyncStatus=%q: got %v, want no errors", s, errs)
		}
	}
	if errs := ValidateRecord(Record{SyncStatus: "uploading"}); len(errs) != 1 {
		t.Errorf("unknown sync status: got %d errors, want 1", len(errs))
	}
	if errs := ValidateRecord(Record{SyncStatus: ""}); len(errs) != 0 {
		t.Errorf("empty sync status: got %v, want no errors", errs)
	}
}
