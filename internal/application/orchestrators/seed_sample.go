package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"greenaudit/internal/domain/audit"
)

// RegistryForSeed defines the registry interface needed by SeedSampleAudit.
type RegistryForSeed interface {
	Create(ctx context.Context, a audit.Audit) (int64, error)
	List(ctx context.Context) ([]audit.Audit, error)
}

// SeedDeps holds dependencies for SeedSampleAudit.
type SeedDeps struct {
	Registry    RegistryForSeed
	RecordStore RecordStoreForSave
}

// ExecuteSeedSampleAudit creates one fully populated demo audit when the
// registry is empty. It exercises the complete write path, so a fresh
// deployment has something to look at.
// PRE: none
// POST: Registry holds at least one audit; no-op when audits already exist
func ExecuteSeedSampleAudit(ctx context.Context, deps SeedDeps) (int64, error) {
	existing, err := deps.Registry.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	now := time.Now()
	id, err := deps.Registry.Create(ctx, audit.Audit{
		CentreName:  "Riverside Community Centre",
		AuditDate:   now.Format("2006-01-02"),
		AuditorName: "Demo Auditor",
		CreatedAt:   now,
	})
	if err != nil {
		return 0, err
	}

	completed := 6
	quick := false
	rec := audit.Record{
		FacilityInfrastructure: &audit.FacilityInfrastructure{
			Bins: []audit.Bin{
				{Location: "Main hall", BinType: audit.BinGeneral, CapacityLitres: 240, SignagePresent: true, SignageQuality: 4},
				{Location: "Main hall", BinType: audit.BinDryRecyclables, CapacityLitres: 240, SignagePresent: true, SignageQuality: 2},
				{Location: "Kitchen", BinType: audit.BinOrganic, CapacityLitres: 120, SignagePresent: false},
			},
			CollectionPointCovered: true,
		},
		WasteStreams: &audit.WasteStreams{
			Streams: []audit.WasteStream{
				{StreamType: audit.BinGeneral, EstimatedWeeklyVolumeLitres: 480, ContaminationLevel: 2, AnnualCostEuros: 1800, CollectionFrequency: "weekly"},
				{StreamType: audit.BinDryRecyclables, EstimatedWeeklyVolumeLitres: 360, ContaminationLevel: 4, AnnualCostEuros: 700, CollectionFrequency: "weekly"},
				{StreamType: audit.BinOrganic, EstimatedWeeklyVolumeLitres: 120, ContaminationLevel: 1, AnnualCostEuros: 300, CollectionFrequency: "fortnightly"},
			},
		},
		SpecialWaste: &audit.SpecialWaste{
			WEEECollection:   true,
			BatteryRecycling: true,
		},
		OrganicWaste: &audit.OrganicWaste{
			HasKitchen:         true,
			CompostingSystem:   audit.CompostingBrownBin,
			FoodWasteSeparated: true,
		},
		PreventionMeasures: &audit.PreventionMeasures{
			Statuses: map[string]audit.MeasureStatus{
				audit.MeasureReusableCups:     audit.MeasureFull,
				audit.MeasureDoubleSidedPrint: audit.MeasurePartial,
				audit.MeasureDonationScheme:   audit.MeasurePlanned,
				audit.MeasureRepairCafe:       audit.MeasureNotImplemented,
			},
		},
		BehaviourTraining: &audit.BehaviourTraining{
			WasteChampionAppointed:      true,
			ChampionName:                "S. Byrne",
			EducationMaterialsDisplayed: true,
			MonitoringFrequency:         "monthly",
		},
		CompletedSections: &completed,
		IsQuickMode:       &quick,
		SyncStatus:        audit.SyncSynced,
	}

	if res := deps.RecordStore.Save(ctx, id, rec); !res.Success {
		return 0, fmt.Errorf("failed to seed sample record: %v", res.Errors)
	}

	slog.Info("audit_event", "event", "sample_seeded", "audit_id", id)
	return id, nil
}
