// Package api provides the HTTP handlers for the FieldOps REST API.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"fieldops/internal/domain"
)

// Service ports consumed by the handlers. The api package depends on these
// narrow interfaces rather than the concrete services so handler tests can
// stub them.
type WorkOrderService interface {
	List(ctx context.Context, f domain.WorkOrderFilter, page domain.PageRequest) (*domain.WorkOrderList, error)
	Get(ctx context.Context, id int64) (*domain.WorkOrder, error)
	Create(ctx context.Context, req domain.CreateWorkOrderRequest) (*domain.WorkOrder, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.WorkOrder, error)
	Delete(ctx context.Context, id int64) error
	ListNotes(ctx context.Context, workOrderID int64, page domain.PageRequest) (*domain.NoteList, error)
	CreateNote(ctx context.Context, workOrderID int64, body string) (*domain.WorkOrderNote, error)
}

type CustomerService interface {
	List(ctx context.Context, f domain.CustomerFilter, page domain.PageRequest) (*domain.CustomerList, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, req domain.CreateCustomerRequest) (*domain.Customer, error)
}

type TechnicianService interface {
	List(ctx context.Context, f domain.TechnicianFilter, page domain.PageRequest) (*domain.TechnicianList, error)
	Get(ctx context.Context, id int64) (*domain.Technician, error)
	Create(ctx context.Context, req domain.CreateTechnicianRequest) (*domain.Technician, error)
}

type InvoiceService interface {
	List(ctx context.Context, f domain.InvoiceFilter, page domain.PageRequest) (*domain.InvoiceList, error)
	Get(ctx context.Context, id int64) (*domain.Invoice, error)
}

type ContractService interface {
	List(ctx context.Context, f domain.ContractFilter, page domain.PageRequest) (*domain.ContractList, error)
	Get(ctx context.Context, id int64) (*domain.Contract, error)
}

type AuditService interface {
	Search(ctx context.Context, f domain.AuditFilter, page domain.PageRequest) ([]domain.AuditEntry, int64, error)
}

// Handler holds the service dependencies for all routes.
type Handler struct {
	workOrders  WorkOrderService
	customers   CustomerService
	technicians TechnicianService
	invoices    InvoiceService
	contracts   ContractService
	audit       AuditService
}

func NewHandler(
	workOrders WorkOrderService,
	customers CustomerService,
	technicians TechnicianService,
	invoices InvoiceService,
	contracts ContractService,
	audit AuditService,
) *Handler {
	return &Handler{
		workOrders:  workOrders,
		customers:   customers,
		technicians: technicians,
		invoices:    invoices,
		contracts:   contracts,
		audit:       audit,
	}
}

// --- request helpers ---

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation("invalid id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

// pageFromQuery extracts max_results/page_token query parameters.
func pageFromQuery(r *http.Request) domain.PageRequest {
	p := domain.PageRequest{PageToken: r.URL.Query().Get("page_token")}
	if raw := r.URL.Query().Get("max_results"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			p.MaxResults = n
		}
	}
	return p
}

func queryInt64Ptr(r *http.Request, key string) *int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func queryTimePtr(r *http.Request, key string) *time.Time {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}
