package audit

import "fmt"

// ValidateRecord checks a (possibly partial) record against its documented
// numeric and range constraints. It returns one human-readable message per
// violation; an empty slice means the record is acceptable to persist.
//
// Validation happens here, at the record-construction boundary, not at decode
// time: values reconstructed from storage are treated as untrusted until
// re-validated by a caller.
// PRE: r is a caller-built record (sections may be nil)
// POST: Returns all violations found; never mutates r
func ValidateRecord(r Record) []string {
	var errs []string

	if fi := r.FacilityInfrastructure; fi != nil {
		for i, bin := range fi.Bins {
			if bin.CapacityLitres < 0 {
				errs = append(errs, fmt.Sprintf("bin %d: capacity cannot be negative", i+1))
			}
			if bin.SignageQuality != 0 && (bin.SignageQuality < 1 || bin.SignageQuality > 5) {
				errs = append(errs, fmt.Sprintf("bin %d: signage quality must be between 1 and 5", i+1))
			}
		}
	}

	if ws := r.WasteStreams; ws != nil {
		for i, stream := range ws.Streams {
			if stream.EstimatedWeeklyVolumeLitres < 0 {
				errs = append(errs, fmt.Sprintf("waste stream %d: weekly volume cannot be negative", i+1))
			}
			if stream.AnnualCostEuros < 0 {
				errs = append(errs, fmt.Sprintf("waste stream %d: annual cost cannot be negative", i+1))
			}
			if stream.ContaminationLevel != 0 && (stream.ContaminationLevel < 1 || stream.ContaminationLevel > 5) {
				errs = append(errs, fmt.Sprintf("waste stream %d: contamination level must be between 1 and 5", i+1))
			}
		}
	}

	if pm := r.PreventionMeasures; pm != nil {
		for name, status := range pm.Statuses {
			switch status {
			case MeasureFull, MeasurePartial, MeasurePlanned, MeasureNotImplemented:
			default:
				errs = append(errs, fmt.Sprintf("prevention measure %q: unknown status %q", name, status))
			}
		}
	}

	if r.CompletedSections != nil && (*r.CompletedSections < 0 || *r.CompletedSections > 6) {
		errs = append(errs, "completed sections must be between 0 and 6")
	}

	if r.SyncStatus != "" && !isValidSyncStatus(r.SyncStatus) {
		errs = append(errs, fmt.Sprintf("unknown sync status %q", r.SyncStatus))
	}

	return errs
}

func isValidSyncStatus(s SyncStatus) bool {
	for _, v := range ValidSyncStatuses {
		if s == v {
			return true
		}
	}
	return false
}
