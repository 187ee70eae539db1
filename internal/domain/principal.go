package domain

import (
	"time"

	"fieldops/internal/rls"
)

// Role names recognized by the policy table.
const (
	RoleAdmin      = "admin"
	RoleDispatcher = "dispatcher"
	RoleTechnician = "technician"
	RoleCustomer   = "customer"
)

// Principal is the authenticated caller: a user account with an assigned
// role and optional links to a customer or technician profile.
type Principal struct {
	ID                  int64
	ExternalID          string // subject claim from the identity token
	Name                string
	Email               string
	Role                string
	CustomerProfileID   *int64
	TechnicianProfileID *int64
	CreatedAt           time.Time
}

// ProfileIdentifiers implements rls.IdentifierSource. Both profile keys are
// always present; a nil value means the principal has no such profile.
func (p *Principal) ProfileIdentifiers() map[string]*int64 {
	return map[string]*int64{
		rls.KeyCustomerProfileID:   p.CustomerProfileID,
		rls.KeyTechnicianProfileID: p.TechnicianProfileID,
	}
}

// IsAdmin reports whether the principal holds the admin role.
func (p *Principal) IsAdmin() bool { return p.Role == RoleAdmin }
