package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"fieldops/internal/domain"
	"fieldops/internal/rls"
)

// WorkOrderService is the authorization boundary for work orders and their
// notes. Every read goes through a row-level security context and every
// result is checked by the enforcement auditor before it leaves the service.
type WorkOrderService struct {
	repo   domain.WorkOrderRepository
	engine *rls.Engine
	audit  auditor
}

func NewWorkOrderService(repo domain.WorkOrderRepository, engine *rls.Engine, auditRepo domain.AuditRepository) *WorkOrderService {
	return &WorkOrderService{repo: repo, engine: engine, audit: auditor{repo: auditRepo}}
}

func (s *WorkOrderService) List(ctx context.Context, filter domain.WorkOrderFilter, page domain.PageRequest) (*domain.WorkOrderList, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	rctx, err := s.engine.BuildContext(p.Role, p.ID, domain.ResourceWorkOrders, p)
	if err != nil {
		s.audit.securityErr(ctx, p, "LIST", domain.ResourceWorkOrders, err)
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

func (s *WorkOrderService) Get(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	rctx, err := s.engine.BuildContext(p.Role, p.ID, domain.ResourceWorkOrders, p)
	if err != nil {
		s.audit.securityErr(ctx, p, "GET", domain.ResourceWorkOrders, err)
		return nil, err
	}
	res, err := s.repo.FindByID(ctx, id, rctx)
	if err != nil {
		return nil, err
	}
	if err := s.audit.assertApplied(ctx, s.engine, p, "GET", rctx, res); err != nil {
		return nil, err
	}
	return &res.WorkOrder, nil
}

func (s *WorkOrderService) Create(ctx context.Context, req domain.CreateWorkOrderRequest) (*domain.WorkOrder, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireRole(p, domain.RoleAdmin, domain.RoleDispatcher); err != nil {
		s.audit.denied(ctx, p, "CREATE", domain.ResourceWorkOrders, "work order creation requires admin or dispatcher")
		return nil, err
	}
	if req.CustomerID <= 0 {
		return nil, domain.ErrValidation("customer_id is required")
	}
	if strings.TrimSpace(req.Summary) == "" {
		return nil, domain.ErrValidation("summary is required")
	}
	if req.Priority == "" {
		req.Priority = domain.PriorityNormal
	}
	if !domain.ValidPriority(req.Priority) {
		return nil, domain.ErrValidation("unknown priority %q", req.Priority)
	}
	number := newWorkOrderNumber()
	wo, err := s.repo.Create(ctx, req, number)
	if err != nil {
		return nil, err
	}
	s.audit.allowed(ctx, p, "CREATE", domain.ResourceWorkOrders, wo.Number)
	return wo, nil
}

func (s *WorkOrderService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.WorkOrder, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrValidation("unknown status %q", status)
	}
	if p.Role == domain.RoleCustomer {
		s.audit.denied(ctx, p, "UPDATE_STATUS", domain.ResourceWorkOrders, "customers may not change work order status")
		return nil, domain.ErrAccessDenied("customers may not change work order status")
	}
	rctx, err := s.engine.BuildContext(p.Role, p.ID, domain.ResourceWorkOrders, p)
	if err != nil {
		s.audit.securityErr(ctx, p, "UPDATE_STATUS", domain.ResourceWorkOrders, err)
		return nil, err
	}
	// Visibility doubles as the write gate: a row the filter hides is a
	// row the caller may not modify, and it 404s the same way.
	res, err := s.repo.FindByID(ctx, id, rctx)
	if err != nil {
		return nil, err
	}
	if err := s.audit.assertApplied(ctx, s.engine, p, "UPDATE_STATUS", rctx, res); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	wo := res.WorkOrder
	wo.Status = status
	s.audit.allowed(ctx, p, "UPDATE_STATUS", domain.ResourceWorkOrders, fmt.Sprintf("%s -> %s", wo.Number, status))
	return &wo, nil
}

func (s *WorkOrderService) Delete(ctx context.Context, id int64) error {
	p, err := caller(ctx)
	if err != nil {
		return err
	}
	if err := requireRole(p, domain.RoleAdmin); err != nil {
		s.audit.denied(ctx, p, "DELETE", domain.ResourceWorkOrders, "work order deletion requires admin")
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.allowed(ctx, p, "DELETE", domain.ResourceWorkOrders, fmt.Sprintf("id=%d", id))
	return nil
}

func (s *WorkOrderService) ListNotes(ctx context.Context, workOrderID int64, page domain.PageRequest) (*domain.NoteList, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	childCtx, err := s.authorizeParent(ctx, p, workOrderID, "LIST_NOTES")
	if err != nil {
		return nil, err
	}
	out, err := s.repo.ListNotes(ctx, workOrderID, page, childCtx)
	if err != nil {
		return nil, err
	}
	if err := s.audit.assertApplied(ctx, s.engine, p, "LIST_NOTES", childCtx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *WorkOrderService) CreateNote(ctx context.Context, workOrderID int64, body string) (*domain.WorkOrderNote, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, domain.ErrValidation("note body is required")
	}
	if _, err := s.authorizeParent(ctx, p, workOrderID, "CREATE_NOTE"); err != nil {
		return nil, err
	}
	note, err := s.repo.CreateNote(ctx, &domain.WorkOrderNote{
		WorkOrderID: workOrderID,
		AuthorID:    p.ID,
		Body:        body,
	})
	if err != nil {
		return nil, err
	}
	s.audit.allowed(ctx, p, "CREATE_NOTE", domain.ResourceWorkOrderNotes, fmt.Sprintf("work_order_id=%d", workOrderID))
	return note, nil
}

// authorizeParent proves the caller can see the parent work order, then
// returns the notes context for the child read. A hidden parent surfaces as
// not-found so callers cannot probe for rows outside their filter.
func (s *WorkOrderService) authorizeParent(ctx context.Context, p *domain.Principal, workOrderID int64, action string) (*rls.Context, error) {
	parentCtx, err := s.engine.BuildContext(p.Role, p.ID, domain.ResourceWorkOrders, p)
	if err != nil {
		s.audit.securityErr(ctx, p, action, domain.ResourceWorkOrders, err)
		return nil, err
	}
	parent, err := s.repo.FindByID(ctx, workOrderID, parentCtx)
	if err != nil {
		return nil, err
	}
	if err := s.audit.assertApplied(ctx, s.engine, p, action, parentCtx, parent); err != nil {
		return nil, err
	}
	childCtx, err := s.engine.BuildContext(p.Role, p.ID, domain.ResourceWorkOrderNotes, p)
	if err != nil {
		s.audit.securityErr(ctx, p, action, domain.ResourceWorkOrderNotes, err)
		return nil, err
	}
	return childCtx, nil
}

func newWorkOrderNumber() string {
	return fmt.Sprintf("WO-%s", strings.ToUpper(uuid.NewString()[:8]))
}
