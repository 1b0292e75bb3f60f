// Package insights derives metrics, recommendations and alerts from a
// reconstructed audit record. Every function is pure: no I/O, no state, safe
// to call concurrently. Partial records are fine; absent sections simply
// contribute nothing.
package insights

import (
	"math"

	"greenaudit/internal/domain/audit"
)

// Conversion factors used across the metric calculations.
const (
	kgPerLitre         = 0.5  // mixed municipal waste density estimate
	carbonKgPerWasteKg = 0.5  // embodied CO2e per kg of residual waste
	savingsRate        = 0.15 // achievable cost reduction from contamination fixes
	weeksPerYear       = 52
)

// Metrics holds the derived numeric indicators for one audit record.
type Metrics struct {
	TotalAnnualCostEuros    float64 `json:"totalAnnualCostEuros"`
	TotalWeeklyVolumeLitres float64 `json:"totalWeeklyVolumeLitres"`
	RecyclableVolumeLitres  float64 `json:"recyclableVolumeLitres"`
	RecyclingRateEstimate   float64 `json:"recyclingRateEstimate"` // percent
	PotentialSavingsEuros   float64 `json:"potentialSavingsEuros"`
	WeeklyWastePerUserKg    float64 `json:"weeklyWastePerUserKg"`
	EstimatedAnnualCarbonKg int     `json:"estimatedAnnualCarbonKg"`
}

// ComputeMetrics sums the waste stream assessments into headline figures.
// PRE: userCount is the facility's regular user count (0 or negative = unknown)
// POST: Returns metrics; rates are rounded to 2 decimal places
func ComputeMetrics(rec audit.Record, userCount int) Metrics {
	var m Metrics

	var streams []audit.WasteStream
	if rec.WasteStreams != nil {
		streams = rec.WasteStreams.Streams
	}

	contaminated := false
	for _, s := range streams {
		m.TotalAnnualCostEuros += s.AnnualCostEuros
		m.TotalWeeklyVolumeLitres += s.EstimatedWeeklyVolumeLitres
		if s.StreamType == audit.BinDryRecyclables || s.StreamType == audit.BinOrganic {
			m.RecyclableVolumeLitres += s.EstimatedWeeklyVolumeLitres
		}
		if s.ContaminationLevel > 3 {
			contaminated = true
		}
	}

	if m.TotalWeeklyVolumeLitres > 0 {
		m.RecyclingRateEstimate = round2(m.RecyclableVolumeLitres / m.TotalWeeklyVolumeLitres * 100)
	}

	// Savings only count when contamination is actually reducible.
	if contaminated {
		m.PotentialSavingsEuros = round2(m.TotalAnnualCostEuros * savingsRate)
	}

	if userCount > 0 {
		m.WeeklyWastePerUserKg = round2(m.TotalWeeklyVolumeLitres * kgPerLitre / float64(userCount))
	}

	m.EstimatedAnnualCarbonKg = int(math.Round(m.TotalWeeklyVolumeLitres * kgPerLitre * weeksPerYear * carbonKgPerWasteKg))

	return m
}

// round2 rounds to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
