package projections

import (
	"context"

	"greenaudit/internal/adapters/storage/auditrecord"
)

// DashboardRecordStore defines the record store interface needed by the
// dashboard projection.
type DashboardRecordStore interface {
	Stats(ctx context.Context) (auditrecord.Stats, error)
	ListAll(ctx context.Context) ([]auditrecord.Summary, error)
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	RecordStore DashboardRecordStore
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	Stats        auditrecord.Stats     `json:"stats"`
	RecentAudits []auditrecord.Summary `json:"recentAudits"`
}

// maxRecentAudits caps the dashboard's recent list.
const maxRecentAudits = 10

// QueryGetDashboard aggregates the stats panel and the recent audits list.
// Store-level read faults have already degraded to defaults, so the dashboard
// always renders.
// PRE: none
// POST: RecentAudits has at most maxRecentAudits entries
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps) (DashboardResult, error) {
	stats, err := deps.RecordStore.Stats(ctx)
	if err != nil {
		return DashboardResult{}, err
	}

	summaries, err := deps.RecordStore.ListAll(ctx)
	if err != nil {
		return DashboardResult{}, err
	}
	if len(summaries) > maxRecentAudits {
		summaries = summaries[:maxRecentAudits]
	}

	return DashboardResult{Stats: stats, RecentAudits: summaries}, nil
}
