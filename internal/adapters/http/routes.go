package web

import "net/http"

// registerRoutes attaches all API handlers to the mux.
// Method checks live inside the handlers; route-level guards only cover
// endpoints that are admin-only in their entirety.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/login", handleLogin)
	mux.HandleFunc("/api/logout", handleLogout)

	mux.HandleFunc("/api/audits", handleAudits)
	mux.HandleFunc("/api/audits/{id}", handleAuditByID)
	mux.HandleFunc("/api/audits/{id}/record", handleAuditRecord)
	mux.HandleFunc("/api/audits/{id}/insights", handleAuditInsights)
	mux.HandleFunc("/api/audits/{id}/report", handleAuditReport)
	mux.HandleFunc("/api/audits/{id}/report/email", handleAuditReportEmail)
	mux.HandleFunc("/api/audits/{id}/images", handleAuditImages)

	mux.HandleFunc("/api/stats", handleStats)

	mux.HandleFunc("/api/admin/perf", handleAdminPerf)
}
