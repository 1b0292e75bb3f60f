package insights

import "greenaudit/internal/domain/audit"

// Compliance thresholds.
const largeProducerWeeklyLitres = 1000

// ComplianceAlerts flags regulatory gaps in the record. Each check is
// independent; the result preserves check order.
// PRE: rec may be partial
// POST: Returns zero or more fixed alert messages
func ComplianceAlerts(rec audit.Record) []string {
	var alerts []string

	hazardous := false
	totalVolume := 0.0
	if rec.WasteStreams != nil {
		for _, s := range rec.WasteStreams.Streams {
			if s.StreamType == audit.BinHazardous {
				hazardous = true
			}
			totalVolume += s.EstimatedWeeklyVolumeLitres
		}
	}

	weeeArranged := rec.SpecialWaste != nil && rec.SpecialWaste.WEEECollection
	if hazardous && !weeeArranged {
		alerts = append(alerts, "A hazardous waste stream is present but no WEEE collection arrangement is in place. Hazardous and electrical waste must go through an authorised collector.")
	}

	composting := rec.OrganicWaste != nil && rec.OrganicWaste.CompostingSystem != "" && rec.OrganicWaste.CompostingSystem != audit.CompostingNone
	if totalVolume > largeProducerWeeklyLitres && !composting {
		alerts = append(alerts, "Weekly waste volume exceeds 1000 litres with no composting system. Large producers are expected to segregate organic waste.")
	}

	return alerts
}

// GrantOpportunities suggests funding schemes the facility likely qualifies
// for, based on gaps in the record.
// PRE: rec may be partial
// POST: Returns zero or more fixed opportunity messages
func GrantOpportunities(rec audit.Record) []string {
	var grants []string

	if PreventionScore(rec.PreventionMeasures) < 50 {
		grants = append(grants, "Prevention score is below 50%: the SEAI Community Energy Grant scheme funds waste prevention upgrades for community facilities.")
	}

	if rec.PreventionMeasures != nil && rec.PreventionMeasures.Statuses[audit.MeasureRepairCafe] == audit.MeasureNotImplemented {
		grants = append(grants, "No repair cafe is running; circular economy funding is available for community repair and reuse initiatives.")
	}

	if rec.OrganicWaste != nil && rec.OrganicWaste.HasKitchen && rec.OrganicWaste.CompostingSystem == audit.CompostingNone {
		grants = append(grants, "A kitchen with no composting system may qualify for a community composting grant from the local authority.")
	}

	return grants
}
