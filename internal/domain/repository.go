package domain

import (
	"context"

	"fieldops/internal/rls"
)

// WorkOrderRepository is the data-access port for work orders. List and
// FindByID receive the request's RLS context and must compose its predicate
// into every read; the returned values carry the applied marker the
// enforcement auditor checks.
type WorkOrderRepository interface {
	List(ctx context.Context, f WorkOrderFilter, page PageRequest, rctx *rls.Context) (*WorkOrderList, error)
	FindByID(ctx context.Context, id int64, rctx *rls.Context) (*WorkOrderResult, error)
	Create(ctx context.Context, req CreateWorkOrderRequest, number string) (*WorkOrder, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error

	ListNotes(ctx context.Context, workOrderID int64, page PageRequest, rctx *rls.Context) (*NoteList, error)
	CreateNote(ctx context.Context, note *WorkOrderNote) (*WorkOrderNote, error)
}

// CustomerRepository is the data-access port for customers.
type CustomerRepository interface {
	List(ctx context.Context, f CustomerFilter, page PageRequest, rctx *rls.Context) (*CustomerList, error)
	FindByID(ctx context.Context, id int64, rctx *rls.Context) (*CustomerResult, error)
	Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
}

// TechnicianRepository is the data-access port for technicians.
type TechnicianRepository interface {
	List(ctx context.Context, f TechnicianFilter, page PageRequest, rctx *rls.Context) (*TechnicianList, error)
	FindByID(ctx context.Context, id int64, rctx *rls.Context) (*TechnicianResult, error)
	Create(ctx context.Context, req CreateTechnicianRequest) (*Technician, error)
}

// InvoiceRepository is the data-access port for invoices.
type InvoiceRepository interface {
	List(ctx context.Context, f InvoiceFilter, page PageRequest, rctx *rls.Context) (*InvoiceList, error)
	FindByID(ctx context.Context, id int64, rctx *rls.Context) (*InvoiceResult, error)
}

// ContractRepository is the data-access port for contracts.
type ContractRepository interface {
	List(ctx context.Context, f ContractFilter, page PageRequest, rctx *rls.Context) (*ContractList, error)
	FindByID(ctx context.Context, id int64, rctx *rls.Context) (*ContractResult, error)
}

// PrincipalRepository resolves authenticated callers.
type PrincipalRepository interface {
	GetByExternalID(ctx context.Context, externalID string) (*Principal, error)
	GetByID(ctx context.Context, id int64) (*Principal, error)
	Create(ctx context.Context, p *Principal) (*Principal, error)
}

// AuditRepository persists and searches audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, e *AuditEntry) error
	Search(ctx context.Context, f AuditFilter, page PageRequest) ([]AuditEntry, int64, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}
