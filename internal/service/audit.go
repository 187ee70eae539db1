package service

import (
	"context"
	"log/slog"

	"fieldops/internal/domain"
	"fieldops/internal/rls"
)

// AuditService exposes the audit log and runs retention cleanup. Read access
// is resolved through the policy table like every other resource, but the
// audit log has no per-row ownership column, so anything short of an
// unrestricted grant is a denial.
type AuditService struct {
	repo   domain.AuditRepository
	engine *rls.Engine
	audit  auditor
	log    *slog.Logger
}

func NewAuditService(repo domain.AuditRepository, engine *rls.Engine, log *slog.Logger) *AuditService {
	return &AuditService{repo: repo, engine: engine, audit: auditor{repo: repo}, log: log}
}

// Search returns matching audit entries for callers whose policy grants an
// unrestricted read of the audit log.
func (s *AuditService) Search(ctx context.Context, filter domain.AuditFilter, page domain.PageRequest) ([]domain.AuditEntry, int64, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, 0, err
	}
	rctx, err := s.engine.BuildContext(p.Role, p.ID, domain.ResourceAuditLog, p)
	if err != nil {
		s.audit.securityErr(ctx, p, "READ", domain.ResourceAuditLog, err)
		return nil, 0, err
	}
	res := s.engine.InterpretContext(rctx, "", 0)
	if res.DenyAll || res.Clause != "" {
		detail := "role " + p.Role + " may not read the audit log"
		s.audit.denied(ctx, p, "READ", domain.ResourceAuditLog, detail)
		return nil, 0, &rls.AuthzError{Resource: domain.ResourceAuditLog, Detail: detail}
	}
	return s.repo.Search(ctx, filter, page)
}

// Cleanup deletes audit entries older than the retention window. Invoked by
// the scheduler, not a request path, so there is no caller to authorize.
func (s *AuditService) Cleanup(ctx context.Context, retentionDays int) (int64, error) {
	n, err := s.repo.DeleteOlderThan(ctx, retentionDays)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("audit retention sweep", "deleted", n, "retention_days", retentionDays)
	}
	return n, nil
}
