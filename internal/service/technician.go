package service

import (
	"context"
	"strings"

	"fieldops/internal/domain"
	"fieldops/internal/rls"
)

// TechnicianService applies row-level security to technician reads and
// gates profile creation to admins.
type TechnicianService struct {
	repo   domain.TechnicianRepository
	engine *rls.Engine
	audit  auditor
}

func NewTechnicianService(repo domain.TechnicianRepository, engine *rls.Engine, auditRepo domain.AuditRepository) *TechnicianService {
	return &TechnicianService{repo: repo, engine: engine, audit: auditor{repo: auditRepo}}
}

func (s *TechnicianService) List(ctx context.Context, filter domain.TechnicianFilter, page domain.PageRequest) (*domain.TechnicianList, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	rctx, err := s.engine.BuildContext(p.Role, p.ID, domain.ResourceTechnicians, p)
	if err != nil {
		s.audit.securityErr(ctx, p, "LIST", domain.ResourceTechnicians, err)
		return nil, err
	}
	out, err := s.repo.List(ctx, filter, page, rctx)
	if err != nil {
		return nil, err
	}
	if err := s.audit.assertApplied(ctx, s.engine, p, "LIST", rctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TechnicianService) Get(ctx context.Context, id int64) (*domain.Technician, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	rctx, err := s.engine.BuildContext(p.Role, p.ID, domain.ResourceTechnicians, p)
	if err != nil {
		s.audit.securityErr(ctx, p, "GET", domain.ResourceTechnicians, err)
		return nil, err
	}
	res, err := s.repo.FindByID(ctx, id, rctx)
	if err != nil {
		return nil, err
	}
	if err := s.audit.assertApplied(ctx, s.engine, p, "GET", rctx, res); err != nil {
		return nil, err
	}
	return &res.Technician, nil
}

func (s *TechnicianService) Create(ctx context.Context, req domain.CreateTechnicianRequest) (*domain.Technician, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireRole(p, domain.RoleAdmin); err != nil {
		s.audit.denied(ctx, p, "CREATE", domain.ResourceTechnicians, "technician creation requires admin")
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrValidation("name is required")
	}
	t, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.audit.allowed(ctx, p, "CREATE", domain.ResourceTechnicians, t.Name)
	return t, nil
}
