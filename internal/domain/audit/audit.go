package audit

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxCentreNameLength  = 200
	MaxAuditorNameLength = 200
)

// Domain errors
var (
	ErrEmptyCentreName  = errors.New("centre name cannot be empty")
	ErrEmptyAuditDate   = errors.New("audit date cannot be empty")
	ErrEmptyAuditorName = errors.New("auditor name cannot be empty")
)

// Audit is the parent identity record an audit record's sections are scoped under.
// It is owned by the registry; the record store only references it by ID and
// never mutates it.
type Audit struct {
	ID          int64     `json:"id"`
	CentreName  string    `json:"centreName"`
	AuditDate   string    `json:"auditDate"` // ISO date (yyyy-mm-dd)
	AuditorName string    `json:"auditorName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate checks if the Audit has valid identity data.
// PRE: Audit struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Audit) Validate() error {
	if strings.TrimSpace(a.CentreName) == "" {
		return ErrEmptyCentreName
	}
	if len(a.CentreName) > MaxCentreNameLength {
		return errors.New("centre name cannot exceed 200 characters")
	}
	if strings.TrimSpace(a.AuditDate) == "" {
		return ErrEmptyAuditDate
	}
	if strings.TrimSpace(a.AuditorName) == "" {
		return ErrEmptyAuditorName
	}
	if len(a.AuditorName) > MaxAuditorNameLength {
		return errors.New("auditor name cannot exceed 200 characters")
	}
	return nil
}
