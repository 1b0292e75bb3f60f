package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"greenaudit/internal/adapters/http/middleware"
	"greenaudit/internal/adapters/storage/auditrecord"
	"greenaudit/internal/adapters/storage/registry"
	"greenaudit/internal/application/listutil"
	"greenaudit/internal/application/orchestrators"
	"greenaudit/internal/application/projections"
	"greenaudit/internal/domain/audit"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// pathAuditID parses the {id} path segment.
func pathAuditID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// handleLogin handles POST /api/login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.LoginInput{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Email = r.FormValue("Email")
		input.Password = r.FormValue("Password")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	deps := orchestrators.LoginDeps{AccountStore: stores.AccountStore}
	result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]any{
		"email": result.Email,
		"role":  result.Role,
	})
}

// handleLogout handles POST /api/logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleAudits handles GET (list) and POST (create) on /api/audits.
func handleAudits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		var (
			summaries []auditrecord.Summary
			err       error
		)
		if centre := r.URL.Query().Get("centre"); centre != "" {
			summaries, err = stores.RecordStore.ListByCentre(ctx, centre)
		} else {
			summaries, err = stores.RecordStore.ListAll(ctx)
		}
		if err != nil {
			internalError(w, err)
			return
		}

		pp := listutil.ParsePageParams(r.URL.Query())
		info := listutil.NewPageInfo(pp.Page, pp.PerPage, len(summaries))
		start := info.Offset()
		end := start + info.PerPage
		if start > len(summaries) {
			start = len(summaries)
		}
		if end > len(summaries) {
			end = len(summaries)
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"audits":   summaries[start:end],
			"pageInfo": info,
		})
		return
	}

	if r.Method == "POST" {
		input := orchestrators.CreateAuditInput{}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		deps := orchestrators.CreateAuditDeps{Registry: stores.Registry, Now: timeNow}
		id, err := orchestrators.ExecuteCreateAudit(ctx, input, deps)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{"id": id})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleAuditByID handles GET and DELETE on /api/audits/{id}.
func handleAuditByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathAuditID(r)
	if !ok {
		http.Error(w, "invalid audit id", http.StatusBadRequest)
		return
	}

	if r.Method == "GET" {
		a, err := stores.Registry.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, registry.ErrNotFound) {
				http.Error(w, "audit not found", http.StatusNotFound)
				return
			}
			internalError(w, err)
			return
		}

		// A registered audit may have no saved sections yet; that is not an error.
		rec, err := stores.RecordStore.Get(ctx, id)
		if err != nil && !errors.Is(err, auditrecord.ErrNotFound) {
			internalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"audit":  a,
			"record": rec,
		})
		return
	}

	if r.Method == "DELETE" {
		if !middleware.IsAdmin(ctx) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		deps := orchestrators.DeleteAuditDeps{
			Registry:   stores.Registry,
			ImageStore: stores.ImageStore,
		}
		if err := orchestrators.ExecuteDeleteAudit(ctx, id, deps); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleAuditRecord handles PUT (full replace) and PATCH (partial merge) on
// /api/audits/{id}/record. PUT accepts ?autosave=1 for best-effort saves.
func handleAuditRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathAuditID(r)
	if !ok {
		http.Error(w, "invalid audit id", http.StatusBadRequest)
		return
	}

	if r.Method != "PUT" && r.Method != "PATCH" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var rec audit.Record
	if err := strictDecode(r, &rec); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	input := orchestrators.SaveRecordInput{
		AuditID:  id,
		Record:   rec,
		AutoSave: r.URL.Query().Get("autosave") == "1",
	}
	deps := orchestrators.SaveRecordDeps{
		Registry:    stores.Registry,
		RecordStore: stores.RecordStore,
	}

	var result orchestrators.SaveRecordResult
	if r.Method == "PUT" {
		result = orchestrators.ExecuteSaveRecord(ctx, input, deps)
	} else {
		result = orchestrators.ExecuteUpdateRecord(ctx, input, deps)
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
		for _, msg := range result.Errors {
			if msg == "audit not found" {
				status = http.StatusNotFound
			}
		}
	}
	writeJSON(w, status, result)
}

// handleAuditInsights handles GET /api/audits/{id}/insights.
// The optional ?users=N parameter enables the per-user metrics.
func handleAuditInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := pathAuditID(r)
	if !ok {
		http.Error(w, "invalid audit id", http.StatusBadRequest)
		return
	}

	users, _ := strconv.Atoi(r.URL.Query().Get("users"))
	if users < 0 {
		users = 0
	}

	result, err := projections.QueryGetInsights(r.Context(),
		projections.GetInsightsQuery{AuditID: id, UserCount: users},
		projections.GetInsightsDeps{RecordStore: stores.RecordStore},
	)
	if err != nil {
		if errors.Is(err, auditrecord.ErrNotFound) {
			http.Error(w, "audit record not found", http.StatusNotFound)
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleAuditReport handles GET /api/audits/{id}/report.
func handleAuditReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := pathAuditID(r)
	if !ok {
		http.Error(w, "invalid audit id", http.StatusBadRequest)
		return
	}

	users, _ := strconv.Atoi(r.URL.Query().Get("users"))
	if users < 0 {
		users = 0
	}

	result, err := projections.QueryGetReport(r.Context(),
		projections.GetInsightsQuery{AuditID: id, UserCount: users},
		projections.GetReportDeps{
			Registry:    stores.Registry,
			RecordStore: stores.RecordStore,
		},
	)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) || errors.Is(err, auditrecord.ErrNotFound) {
			http.Error(w, "audit not found", http.StatusNotFound)
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleAuditReportEmail handles POST /api/audits/{id}/report/email.
func handleAuditReportEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := pathAuditID(r)
	if !ok {
		http.Error(w, "invalid audit id", http.StatusBadRequest)
		return
	}
	if emailSender == nil {
		http.Error(w, "email delivery is not configured", http.StatusServiceUnavailable)
		return
	}

	var body struct {
		Recipient string `json:"recipient"`
		UserCount int    `json:"userCount"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	input := orchestrators.EmailReportInput{
		AuditID:   id,
		Recipient: body.Recipient,
		UserCount: body.UserCount,
	}
	deps := orchestrators.EmailReportDeps{
		Registry:    stores.Registry,
		RecordStore: stores.RecordStore,
		Sender:      emailSender,
	}

	messageID, err := orchestrators.ExecuteEmailReport(r.Context(), input, deps)
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmptyRecipient) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, registry.ErrNotFound) || errors.Is(err, auditrecord.ErrNotFound) {
			http.Error(w, "audit not found", http.StatusNotFound)
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messageId": messageID})
}

// handleStats handles GET /api/stats: the dashboard aggregate panel plus the
// most recent audits.
func handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetDashboard(r.Context(),
		projections.GetDashboardDeps{RecordStore: stores.RecordStore},
	)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleAdminPerf handles GET /api/admin/perf. Admin-only.
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !middleware.IsAdmin(r.Context()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusServiceUnavailable)
		return
	}

	// Default window: last hour
	since := timeNow().Add(-time.Hour)
	if v := r.URL.Query().Get("minutes"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			since = timeNow().Add(-time.Duration(n) * time.Minute)
		}
	}

	writeJSON(w, http.StatusOK, perfCollector.Snapshot(since, 10))
}
