package insights

import (
	"sort"

	"greenaudit/internal/domain/audit"
)

// Impact tiers for quick wins.
const (
	ImpactHigh   = "high"
	ImpactMedium = "medium"
	ImpactLow    = "low"
)

// QuickWin is a low-cost, high-confidence recommendation.
type QuickWin struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	EstimatedCost    string `json:"estimatedCost"`
	EstimatedSavings string `json:"estimatedSavings"`
	Impact           string `json:"impact"`
	Priority         int    `json:"priority"`
}

// MaxQuickWins caps the number of quick wins returned.
const MaxQuickWins = 5

// QuickWins evaluates the fixed quick-win conditions against the record and
// returns the matching recommendations, sorted ascending by priority and
// truncated to MaxQuickWins. Priorities follow condition declaration order.
// PRE: rec may be partial; absent sections are treated as empty
// POST: Result length <= MaxQuickWins; Priority values strictly increase
func QuickWins(rec audit.Record) []QuickWin {
	var wins []QuickWin
	priority := 0
	add := func(w QuickWin) {
		priority++
		w.Priority = priority
		wins = append(wins, w)
	}

	var bins []audit.Bin
	if rec.FacilityInfrastructure != nil {
		bins = rec.FacilityInfrastructure.Bins
	}
	var streams []audit.WasteStream
	if rec.WasteStreams != nil {
		streams = rec.WasteStreams.Streams
	}

	hasRecyclingBin := false
	poorSignage := false
	for _, b := range bins {
		if b.BinType == audit.BinDryRecyclables {
			hasRecyclingBin = true
		}
		if b.SignagePresent && b.SignageQuality < 3 {
			poorSignage = true
		}
	}
	if !hasRecyclingBin {
		add(QuickWin{
			ID:               "add-recycling-bins",
			Title:            "Add dry recyclables bins",
			Description:      "No dry recyclables bin was found in the inventory. Paired general/recycling bins at every point of disposal are the single biggest driver of recycling rates.",
			EstimatedCost:    "€150-€400",
			EstimatedSavings: "€300-€800 per year",
			Impact:           ImpactHigh,
		})
	}
	if poorSignage {
		add(QuickWin{
			ID:               "improve-signage",
			Title:            "Improve bin signage",
			Description:      "Bins were found with signage rated below 3 out of 5. Clear colour-coded signage with pictures reduces contamination at no ongoing cost.",
			EstimatedCost:    "€50-€150",
			EstimatedSavings: "€200-€500 per year",
			Impact:           ImpactMedium,
		})
	}

	for _, s := range streams {
		if s.ContaminationLevel > 3 {
			add(QuickWin{
				ID:               "reduce-contamination",
				Title:            "Tackle stream contamination",
				Description:      "At least one waste stream has a contamination level above 3. Contaminated loads are charged at residual rates; a short staff briefing usually pays for itself within a quarter.",
				EstimatedCost:    "€0",
				EstimatedSavings: "Up to 15% of annual waste costs",
				Impact:           ImpactHigh,
			})
			break
		}
	}

	if rec.BehaviourTraining == nil || !rec.BehaviourTraining.WasteChampionAppointed {
		add(QuickWin{
			ID:               "appoint-champion",
			Title:            "Appoint a waste champion",
			Description:      "No waste champion is appointed. A named volunteer or staff member who owns the bins keeps every other measure working.",
			EstimatedCost:    "€0",
			EstimatedSavings: "Indirect",
			Impact:           ImpactMedium,
		})
	}

	if rec.OrganicWaste != nil && rec.OrganicWaste.HasKitchen && rec.OrganicWaste.CompostingSystem == audit.CompostingNone {
		add(QuickWin{
			ID:               "start-composting",
			Title:            "Start composting kitchen waste",
			Description:      "The facility has a kitchen but no composting system. A brown bin or home composter diverts the heaviest fraction of the waste stream.",
			EstimatedCost:    "€80-€250",
			EstimatedSavings: "€150-€400 per year",
			Impact:           ImpactMedium,
		})
	}

	sort.Slice(wins, func(i, j int) bool { return wins[i].Priority < wins[j].Priority })
	if len(wins) > MaxQuickWins {
		wins = wins[:MaxQuickWins]
	}
	return wins
}
