// Package report renders an audit's findings as a markdown document and as
// HTML for the report endpoint and report emails.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"greenaudit/internal/domain/audit"
	"greenaudit/internal/domain/insights"
)

// md is the shared goldmark instance. Tables are needed for the metrics block.
var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// BuildMarkdown assembles the full audit report as markdown.
// PRE: a is the audit identity; rec may be partial; ins derived from rec
// POST: Returns a self-contained markdown document
func BuildMarkdown(a audit.Audit, rec audit.Record, ins insights.Insights) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Environmental Audit Report: %s\n\n", a.CentreName)
	fmt.Fprintf(&b, "**Audit date:** %s  \n**Auditor:** %s  \n**Overall score:** %d/100\n\n",
		a.AuditDate, a.AuditorName, ins.OverallScore)

	b.WriteString("## Key metrics\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	m := ins.Metrics
	fmt.Fprintf(&b, "| Total annual waste cost | €%.2f |\n", m.TotalAnnualCostEuros)
	fmt.Fprintf(&b, "| Total weekly volume | %.0f L |\n", m.TotalWeeklyVolumeLitres)
	fmt.Fprintf(&b, "| Estimated recycling rate | %.2f%% |\n", m.RecyclingRateEstimate)
	fmt.Fprintf(&b, "| Potential savings | €%.2f |\n", m.PotentialSavingsEuros)
	fmt.Fprintf(&b, "| Weekly waste per user | %.2f kg |\n", m.WeeklyWastePerUserKg)
	fmt.Fprintf(&b, "| Estimated annual carbon | %d kg CO2e |\n\n", m.EstimatedAnnualCarbonKg)

	fmt.Fprintf(&b, "**Prevention score:** %.1f%%\n\n", ins.PreventionScore)

	if len(ins.QuickWins) > 0 {
		b.WriteString("## Quick wins\n\n")
		for _, w := range ins.QuickWins {
			fmt.Fprintf(&b, "%d. **%s** (%s impact, cost %s, savings %s)  \n   %s\n",
				w.Priority, w.Title, w.Impact, w.EstimatedCost, w.EstimatedSavings, w.Description)
		}
		b.WriteString("\n")
	}

	if len(ins.ComplianceAlerts) > 0 {
		b.WriteString("## Compliance alerts\n\n")
		for _, alert := range ins.ComplianceAlerts {
			fmt.Fprintf(&b, "- ⚠ %s\n", alert)
		}
		b.WriteString("\n")
	}

	if len(ins.GrantOpportunities) > 0 {
		b.WriteString("## Grant opportunities\n\n")
		for _, g := range ins.GrantOpportunities {
			fmt.Fprintf(&b, "- %s\n", g)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Recommendations\n\n")
	for _, r := range ins.Recommendations {
		fmt.Fprintf(&b, "- %s\n", r)
	}

	if rec.CompletedSections != nil {
		fmt.Fprintf(&b, "\n---\n\n*%d of 6 sections completed.*\n", *rec.CompletedSections)
	}

	return b.String()
}

// RenderHTML converts report markdown to an HTML fragment.
// PRE: markdown is valid UTF-8
// POST: Returns rendered HTML, or an error from the renderer
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}
