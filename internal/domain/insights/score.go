package insights

import (
	"math"

	"greenaudit/internal/domain/audit"
)

// Points awarded per prevention measure status.
const (
	measurePointsFull    = 4
	measurePointsPartial = 2
	measurePointsPlanned = 1
	measurePointsMax     = 4
)

// PreventionScore scores the fixed set of prevention measures as a percentage.
// A measure absent from the section (or the whole section being nil) scores
// zero, same as not-implemented.
// PRE: pm may be nil
// POST: Returns a value in [0,100]
func PreventionScore(pm *audit.PreventionMeasures) float64 {
	sum := 0
	for _, name := range audit.MeasureNames {
		if pm == nil {
			break
		}
		switch pm.Statuses[name] {
		case audit.MeasureFull:
			sum += measurePointsFull
		case audit.MeasurePartial:
			sum += measurePointsPartial
		case audit.MeasurePlanned:
			sum += measurePointsPlanned
		}
	}
	maxPoints := len(audit.MeasureNames) * measurePointsMax
	return float64(sum) / float64(maxPoints) * 100
}

// Weighting of the overall score components.
const (
	infrastructureMax = 20
	preventionMax     = 30
	trainingMax       = 25
	contaminationMax  = 25
)

// OverallScore computes the weighted 0-100 composite score.
//
// Infrastructure and prevention always count toward the achievable maximum;
// training and contamination only count when their sections are present, so a
// partial audit is scored against what it actually assessed.
// PRE: rec may be partial
// POST: Returns a value in [0,100]; 0 when nothing is achievable
func OverallScore(rec audit.Record) int {
	var raw, max float64

	// Infrastructure: 2 points per bin capped at 10, plus 10 flat for having
	// any dry recyclables bin.
	max += infrastructureMax
	if fi := rec.FacilityInfrastructure; fi != nil {
		binPoints := 2 * len(fi.Bins)
		if binPoints > 10 {
			binPoints = 10
		}
		raw += float64(binPoints)
		for _, b := range fi.Bins {
			if b.BinType == audit.BinDryRecyclables {
				raw += 10
				break
			}
		}
	}

	// Prevention: scaled from the prevention score.
	max += preventionMax
	raw += PreventionScore(rec.PreventionMeasures) / 100 * preventionMax

	// Training: only scored when the section was assessed.
	if bt := rec.BehaviourTraining; bt != nil {
		max += trainingMax
		if bt.WasteChampionAppointed {
			raw += 10
		}
		if bt.EducationMaterialsDisplayed {
			raw += 10
		}
		if bt.MonitoringFrequency != "never" {
			raw += 5
		}
	}

	// Contamination: scaled inversely from the mean level across streams.
	// An unassessed stream counts as worst-case 5.
	if ws := rec.WasteStreams; ws != nil && len(ws.Streams) > 0 {
		max += contaminationMax
		sum := 0.0
		for _, s := range ws.Streams {
			level := s.ContaminationLevel
			if level < 1 || level > 5 {
				level = 5
			}
			sum += float64(level)
		}
		mean := sum / float64(len(ws.Streams))
		raw += (1 - (mean-1)/4) * contaminationMax
	}

	if max == 0 {
		return 0
	}
	return int(math.Round(raw / max * 100))
}

// Overall score tiers for the summary recommendations.
const (
	scoreTierLow = 40
	scoreTierMid = 70
)

// Recommendations returns the fixed summary guidance for the record's overall
// score tier.
func Recommendations(rec audit.Record) []string {
	score := OverallScore(rec)
	switch {
	case score < scoreTierLow:
		return []string{
			"The facility is at an early stage of waste management. Start with the basics: paired general and recycling bins, clear signage, and a named waste champion.",
			"Book a free waste audit follow-up with your local authority environment office.",
			"Focus on the quick wins before investing in equipment.",
		}
	case score < scoreTierMid:
		return []string{
			"Good foundations are in place. The next gains come from reducing contamination and formalising prevention measures.",
			"Set up monthly monitoring of bin contamination and publish the results to users.",
			"Review the prevention measures scoring below full implementation.",
		}
	default:
		return []string{
			"The facility is performing well. Maintain momentum with regular monitoring and user engagement.",
			"Consider mentoring a neighbouring facility or applying for green facility accreditation.",
			"Review contracts annually; high performers often qualify for reduced collection rates.",
		}
	}
}

// Insights bundles everything the engine derives from one record.
type Insights struct {
	Metrics            Metrics    `json:"metrics"`
	QuickWins          []QuickWin `json:"quickWins"`
	ComplianceAlerts   []string   `json:"complianceAlerts"`
	GrantOpportunities []string   `json:"grantOpportunities"`
	PreventionScore    float64    `json:"preventionScore"`
	OverallScore       int        `json:"overallScore"`
	Recommendations    []string   `json:"recommendations"`
}

// Compute runs the full engine over one record.
// PRE: rec may be partial; userCount <= 0 means unknown
// POST: Returns all derived insights; rec is not mutated
func Compute(rec audit.Record, userCount int) Insights {
	return Insights{
		Metrics:            ComputeMetrics(rec, userCount),
		QuickWins:          QuickWins(rec),
		ComplianceAlerts:   ComplianceAlerts(rec),
		GrantOpportunities: GrantOpportunities(rec),
		PreventionScore:    PreventionScore(rec.PreventionMeasures),
		OverallScore:       OverallScore(rec),
		Recommendations:    Recommendations(rec),
	}
}
