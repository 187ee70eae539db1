package domain

import "time"

// Audit entry statuses.
const (
	AuditAllowed   = "ALLOWED"
	AuditDenied    = "DENIED"
	AuditViolation = "VIOLATION"
)

// AuditEntry records a security-relevant action: mutations, denials, and
// enforcement violations.
type AuditEntry struct {
	ID            int64
	PrincipalName string
	Action        string
	Resource      string
	Status        string
	Detail        string
	CreatedAt     time.Time
}

// AuditFilter holds search parameters for the audit log.
type AuditFilter struct {
	PrincipalName string
	Action        string
	Status        string
	Since         *time.Time
	Until         *time.Time
}
