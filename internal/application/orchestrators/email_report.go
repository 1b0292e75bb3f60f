package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"greenaudit/internal/adapters/email"
	"greenaudit/internal/domain/audit"
	"greenaudit/internal/domain/insights"
	"greenaudit/internal/domain/report"
)

// RegistryForReport defines the registry interface needed by EmailReport.
type RegistryForReport interface {
	GetByID(ctx context.Context, id int64) (audit.Audit, error)
}

// RecordStoreForReport defines the record store interface needed by EmailReport.
type RecordStoreForReport interface {
	Get(ctx context.Context, auditID int64) (audit.Record, error)
}

// EmailReportInput carries input for the email report orchestrator.
type EmailReportInput struct {
	AuditID   int64
	Recipient string
	UserCount int // facility user count for the per-user metrics, 0 = unknown
}

// EmailReportDeps holds dependencies for EmailReport.
type EmailReportDeps struct {
	Registry    RegistryForReport
	RecordStore RecordStoreForReport
	Sender      email.Sender
}

// ErrEmptyRecipient is returned when no recipient address was supplied.
var ErrEmptyRecipient = errors.New("recipient email is required")

// ExecuteEmailReport renders the audit report and emails it to the recipient.
// PRE: AuditID refers to an audit with a saved record
// POST: Report email is queued with the provider; returns the message ID
func ExecuteEmailReport(ctx context.Context, input EmailReportInput, deps EmailReportDeps) (string, error) {
	if input.Recipient == "" {
		return "", ErrEmptyRecipient
	}

	a, err := deps.Registry.GetByID(ctx, input.AuditID)
	if err != nil {
		return "", err
	}
	rec, err := deps.RecordStore.Get(ctx, input.AuditID)
	if err != nil {
		return "", err
	}

	ins := insights.Compute(rec, input.UserCount)
	html, err := report.RenderHTML(report.BuildMarkdown(a, rec, ins))
	if err != nil {
		return "", err
	}

	result, err := deps.Sender.Send(ctx, email.SendRequest{
		To:      []string{input.Recipient},
		Subject: fmt.Sprintf("Environmental audit report: %s (%s)", a.CentreName, a.AuditDate),
		HTML:    html,
	})
	if err != nil {
		return "", err
	}

	slog.Info("audit_event", "event", "report_emailed", "audit_id", input.AuditID, "to", input.Recipient, "message_id", result.MessageID)
	return result.MessageID, nil
}
