package service

import (
	"context"
	"strings"

	"fieldops/internal/domain"
	"fieldops/internal/rls"
)

// CustomerService applies row-level security to customer reads and gates
// customer creation to back-office roles.
type CustomerService struct {
	repo   domain.CustomerRepository
	engine *rls.Engine
	audit  auditor
}

func NewCustomerService(repo domain.CustomerRepository, engine *rls.Engine, auditRepo domain.AuditRepository) *CustomerService {
	return &CustomerService{repo: repo, engine: engine, audit: auditor{repo: auditRepo}}
}

func (s *CustomerService) List(ctx context.Context, filter domain.CustomerFilter, page domain.PageRequest) (*domain.CustomerList, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	rctx, err := s.engine.BuildContext(p.Role, p.ID, domain.ResourceCustomers, p)
	if err != nil {
		s.audit.securityErr(ctx, p, "LIST", domain.ResourceCustomers, err)
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

func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	rctx, err := s.engine.BuildContext(p.Role, p.ID, domain.ResourceCustomers, p)
	if err != nil {
		s.audit.securityErr(ctx, p, "GET", domain.ResourceCustomers, err)
		return nil, err
	}
	res, err := s.repo.FindByID(ctx, id, rctx)
	if err != nil {
		return nil, err
	}
	if err := s.audit.assertApplied(ctx, s.engine, p, "GET", rctx, res); err != nil {
		return nil, err
	}
	return &res.Customer, nil
}

func (s *CustomerService) Create(ctx context.Context, req domain.CreateCustomerRequest) (*domain.Customer, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireRole(p, domain.RoleAdmin, domain.RoleDispatcher); err != nil {
		s.audit.denied(ctx, p, "CREATE", domain.ResourceCustomers, "customer creation requires admin or dispatcher")
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrValidation("name is required")
	}
	c, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.audit.allowed(ctx, p, "CREATE", domain.ResourceCustomers, c.Name)
	return c, nil
}
