package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"greenaudit/internal/adapters/email"
	"greenaudit/internal/domain/audit"
)

type fakeRecordReader struct {
	records map[int64]audit.Record
}

func (f *fakeRecordReader) Get(_ context.Context, auditID int64) (audit.Record, error) {
	rec, ok := f.records[auditID]
	if !ok {
		return audit.Record{}, errors.New("audit record not found")
	}
	return rec, nil
}

type fakeSender struct {
	sent []email.SendRequest
	err  error
}

func (f *fakeSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if f.err != nil {
		return email.SendResult{}, f.err
	}
	f.sent = append(f.sent, req)
	return email.SendResult{MessageID: "msg-123"}, nil
}

func reportDeps(sender *fakeSender) EmailReportDeps {
	return EmailReportDeps{
		Registry: knownAudit(),
		RecordStore: &fakeRecordReader{records: map[int64]audit.Record{
			7: {OrganicWaste: &audit.OrganicWaste{HasKitchen: true, CompostingSystem: audit.CompostingNone}},
		}},
		Sender: sender,
	}
}

// TestExecuteEmailReport_Success verifies the report is rendered and sent.
func TestExecuteEmailReport_Success(t *testing.T) {
	sender := &fakeSender{}
	id, err := ExecuteEmailReport(context.Background(), EmailReportInput{
		AuditID:   7,
		Recipient: "manager@riverside.ie",
		UserCount: 40,
	}, reportDeps(sender))
	if err != nil {
		t.Fatalf("ExecuteEmailReport: %v", err)
	}
	if id != "msg-123" {
		t.Errorf("message id = %q, want msg-123", id)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.sent))
	}

	req := sender.sent[0]
	if len(req.To) != 1 || req.To[0] != "manager@riverside.ie" {
		t.Errorf("To = %v", req.To)
	}
	if req.Subject != "Environmental audit report: Riverside Hall (2026-03-01)" {
		t.Errorf("Subject = %q", req.Subject)
	}
	if !strings.Contains(req.HTML, "Riverside Hall") || !strings.Contains(req.HTML, "<h1") {
		t.Errorf("HTML body missing rendered report content")
	}
}

// TestExecuteEmailReport_EmptyRecipient verifies the precondition check.
func TestExecuteEmailReport_EmptyRecipient(t *testing.T) {
	sender := &fakeSender{}
	_, err := ExecuteEmailReport(context.Background(), EmailReportInput{AuditID: 7}, reportDeps(sender))
	if !errors.Is(err, ErrEmptyRecipient) {
		t.Errorf("err = %v, want ErrEmptyRecipient", err)
	}
	if len(sender.sent) != 0 {
		t.Error("email sent despite empty recipient")
	}
}

// TestExecuteEmailReport_MissingData verifies lookups fail before sending.
func TestExecuteEmailReport_MissingData(t *testing.T) {
	sender := &fakeSender{}
	deps := reportDeps(sender)

	if _, err := ExecuteEmailReport(context.Background(), EmailReportInput{
		AuditID: 99, Recipient: "x@y.ie",
	}, deps); err == nil {
		t.Error("err = nil for unknown audit")
	}

	deps.RecordStore = &fakeRecordReader{}
	if _, err := ExecuteEmailReport(context.Background(), EmailReportInput{
		AuditID: 7, Recipient: "x@y.ie",
	}, deps); err == nil {
		t.Error("err = nil for audit without a record")
	}
	if len(sender.sent) != 0 {
		t.Error("email sent despite missing data")
	}
}

// TestExecuteEmailReport_SenderFailure verifies provider errors surface.
func TestExecuteEmailReport_SenderFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("provider down")}
	_, err := ExecuteEmailReport(context.Background(), EmailReportInput{
		AuditID: 7, Recipient: "x@y.ie",
	}, reportDeps(sender))
	if err == nil || !strings.Contains(err.Error(), "provider down") {
		t.Errorf("err = %v, want the provider error", err)
	}
}
