package service

import (
	"context"

	"fieldops/internal/domain"
	"fieldops/internal/rls"
)

// ContractService is read-only; contracts are managed out of band.
type ContractService struct {
	repo   domain.ContractRepository
	engine *rls.Engine
	audit  auditor
}

func NewContractService(repo domain.ContractRepository, engine *rls.Engine, auditRepo domain.AuditRepository) *ContractService {
	return &ContractService{repo: repo, engine: engine, audit: auditor{repo: auditRepo}}
}

func (s *ContractService) List(ctx context.Context, filter domain.ContractFilter, page domain.PageRequest) (*domain.ContractList, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	rctx, err := s.engine.BuildContext(p.Role, p.ID, domain.ResourceContracts, p)
	if err != nil {
		s.audit.securityErr(ctx, p, "LIST", domain.ResourceContracts, err)
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

func (s *ContractService) Get(ctx context.Context, id int64) (*domain.Contract, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	rctx, err := s.engine.BuildContext(p.Role, p.ID, domain.ResourceContracts, p)
	if err != nil {
		s.audit.securityErr(ctx, p, "GET", domain.ResourceContracts, err)
		return nil, err
	}
	res, err := s.repo.FindByID(ctx, id, rctx)
	if err != nil {
		return nil, err
	}
	if err := s.audit.assertApplied(ctx, s.engine, p, "GET", rctx, res); err != nil {
		return nil, err
	}
	return &res.Contract, nil
}
