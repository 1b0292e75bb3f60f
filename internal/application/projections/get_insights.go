package projections

import (
	"context"

	"greenaudit/internal/domain/audit"
	"greenaudit/internal/domain/insights"
	"greenaudit/internal/domain/report"
)

// InsightsRecordStore defines the record store interface needed by the
// insights and report projections.
type InsightsRecordStore interface {
	Get(ctx context.Context, auditID int64) (audit.Record, error)
}

// InsightsRegistry defines the registry interface needed by the report
// projection.
type InsightsRegistry interface {
	GetByID(ctx context.Context, id int64) (audit.Audit, error)
}

// GetInsightsQuery carries input for the insights projection.
type GetInsightsQuery struct {
	AuditID   int64
	UserCount int // 0 = unknown, disables per-user metrics
}

// GetInsightsDeps holds dependencies for the insights projection.
type GetInsightsDeps struct {
	RecordStore InsightsRecordStore
}

// QueryGetInsights reconstructs the record and runs the scoring engine on it.
// PRE: none
// POST: Returns the engine output, or the store's not-found error
func QueryGetInsights(ctx context.Context, query GetInsightsQuery, deps GetInsightsDeps) (insights.Insights, error) {
	rec, err := deps.RecordStore.Get(ctx, query.AuditID)
	if err != nil {
		return insights.Insights{}, err
	}
	return insights.Compute(rec, query.UserCount), nil
}

// GetReportDeps holds dependencies for the report projection.
type GetReportDeps struct {
	Registry    InsightsRegistry
	RecordStore InsightsRecordStore
}

// ReportResult carries the rendered audit report.
type ReportResult struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// QueryGetReport builds and renders the full audit report.
// PRE: none
// POST: Returns markdown and HTML, or the first error encountered
func QueryGetReport(ctx context.Context, query GetInsightsQuery, deps GetReportDeps) (ReportResult, error) {
	a, err := deps.Registry.GetByID(ctx, query.AuditID)
	if err != nil {
		return ReportResult{}, err
	}
	rec, err := deps.RecordStore.Get(ctx, query.AuditID)
	if err != nil {
		return ReportResult{}, err
	}

	ins := insights.Compute(rec, query.UserCount)
	markdown := report.BuildMarkdown(a, rec, ins)
	html, err := report.RenderHTML(markdown)
	if err != nil {
		return ReportResult{}, err
	}
	return ReportResult{Markdown: markdown, HTML: html}, nil
}
