package service

import (
	"context"

	"fieldops/internal/domain"
	"fieldops/internal/rls"
)

// InvoiceService is read-only; invoices are produced by billing jobs, not
// the API. Row-level security decides who sees which invoices.
type InvoiceService struct {
	repo   domain.InvoiceRepository
	engine *rls.Engine
	audit  auditor
}

func NewInvoiceService(repo domain.InvoiceRepository, engine *rls.Engine, auditRepo domain.AuditRepository) *InvoiceService {
	return &InvoiceService{repo: repo, engine: engine, audit: auditor{repo: auditRepo}}
}

func (s *InvoiceService) List(ctx context.Context, filter domain.InvoiceFilter, page domain.PageRequest) (*domain.InvoiceList, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	rctx, err := s.engine.BuildContext(p.Role, p.ID, domain.ResourceInvoices, p)
	if err != nil {
		s.audit.securityErr(ctx, p, "LIST", domain.ResourceInvoices, err)
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

func (s *InvoiceService) Get(ctx context.Context, id int64) (*domain.Invoice, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	rctx, err := s.engine.BuildContext(p.Role, p.ID, domain.ResourceInvoices, p)
	if err != nil {
		s.audit.securityErr(ctx, p, "GET", domain.ResourceInvoices, err)
		return nil, err
	}
	res, err := s.repo.FindByID(ctx, id, rctx)
	if err != nil {
		return nil, err
	}
	if err := s.audit.assertApplied(ctx, s.engine, p, "GET", rctx, res); err != nil {
		return nil, err
	}
	return &res.Invoice, nil
}
