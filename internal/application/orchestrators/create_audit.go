package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"greenaudit/internal/domain/audit"
)

// RegistryForCreate defines the store interface needed by CreateAudit.
type RegistryForCreate interface {
	Create(ctx context.Context, a audit.Audit) (int64, error)
}

// CreateAuditInput carries input for the create audit orchestrator.
type CreateAuditInput struct {
	CentreName  string
	AuditDate   string // yyyy-mm-dd; defaults to today when empty
	AuditorName string
}

// CreateAuditDeps holds dependencies for CreateAudit.
type CreateAuditDeps struct {
	Registry RegistryForCreate
	Now      func() time.Time
}

// ExecuteCreateAudit validates the identity fields and registers a new audit.
// PRE: CentreName and AuditorName are non-empty
// POST: Returns the new audit's assigned ID
func ExecuteCreateAudit(ctx context.Context, input CreateAuditInput, deps CreateAuditDeps) (int64, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	a := audit.Audit{
		CentreName:  input.CentreName,
		AuditDate:   input.AuditDate,
		AuditorName: input.AuditorName,
		CreatedAt:   now(),
	}
	if a.AuditDate == "" {
		a.AuditDate = now().Format("2006-01-02")
	}
	if err := a.Validate(); err != nil {
		return 0, err
	}

	id, err := deps.Registry.Create(ctx, a)
	if err != nil {
		return 0, err
	}

	slog.Info("audit_event", "event", "audit_created", "audit_id", id, "centre", a.CentreName)
	return id, nil
}
