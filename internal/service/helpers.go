// Package service orchestrates the request flow for every entity: resolve
// the caller, build the RLS context, hand it to the repository, assert the
// filter was honored, and record audit entries for mutations and security
// events.
package service

import (
	"context"
	"errors"

	"fieldops/internal/domain"
	"fieldops/internal/rls"
)

// caller returns the authenticated principal from the request context.
func caller(ctx context.Context) (*domain.Principal, error) {
	p, ok := domain.PrincipalFromContext(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied("no authenticated principal")
	}
	return p, nil
}

// requireRole gates a mutation to the named roles.
func requireRole(p *domain.Principal, roles ...string) error {
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return domain.ErrAccessDenied("role %q may not perform this operation", p.Role)
}

// auditor centralizes audit-entry writing. Insert failures are deliberately
// ignored: an audit outage must not take data paths down with it.
type auditor struct {
	repo domain.AuditRepository
}

func (a auditor) allowed(ctx context.Context, p *domain.Principal, action, resource, detail string) {
	_ = a.repo.Insert(ctx, &domain.AuditEntry{
		PrincipalName: p.Name,
		Action:        action,
		Resource:      resource,
		Status:        domain.AuditAllowed,
		Detail:        detail,
	})
}

func (a auditor) denied(ctx context.Context, p *domain.Principal, action, resource, detail string) {
	_ = a.repo.Insert(ctx, &domain.AuditEntry{
		PrincipalName: p.Name,
		Action:        action,
		Resource:      resource,
		Status:        domain.AuditDenied,
		Detail:        detail,
	})
}

// securityErr records a denied entry for authorization failures raised while
// building the RLS context. Configuration errors are not the caller's doing
// and are left to the logs.
func (a auditor) securityErr(ctx context.Context, p *domain.Principal, action, resource string, err error) {
	var authz *rls.AuthzError
	if errors.As(err, &authz) {
		a.denied(ctx, p, action, resource, authz.Detail)
	}
}

// violation records an enforcement violation before it is surfaced.
func (a auditor) violation(ctx context.Context, p *domain.Principal, action string, v *rls.EnforcementViolation) {
	_ = a.repo.Insert(ctx, &domain.AuditEntry{
		PrincipalName: p.Name,
		Action:        action,
		Resource:      v.Resource,
		Status:        domain.AuditViolation,
		Detail:        v.Config,
	})
}

// assertApplied runs the enforcement auditor and records any violation.
func (a auditor) assertApplied(ctx context.Context, engine *rls.Engine, p *domain.Principal, action string, rctx *rls.Context, res rls.AppliedReporter) error {
	err := engine.AssertApplied(rctx, res)
	if err == nil {
		return nil
	}
	var v *rls.EnforcementViolation
	if errors.As(err, &v) {
		a.violation(ctx, p, action, v)
	}
	return err
}
