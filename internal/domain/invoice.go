package domain

import (
	"time"

	"fieldops/internal/rls"
)

// Invoice statuses.
const (
	InvoiceDraft  = "draft"
	InvoiceIssued = "issued"
	InvoicePaid   = "paid"
	InvoiceVoid   = "void"
)

// Invoice bills a customer for a completed work order.
type Invoice struct {
	ID          int64
	Number      string
	WorkOrderID int64
	CustomerID  int64
	AmountCents int64
	Status      string
	IssuedAt    *time.Time
	DueAt       *time.Time
	CreatedAt   time.Time
}

// InvoiceFilter holds search parameters for listing invoices.
type InvoiceFilter struct {
	Status     string
	CustomerID *int64
}

// InvoiceList is a page of invoices with its RLS applied marker.
type InvoiceList struct {
	rls.Marker
	Items []Invoice
	Total int64
}

// InvoiceResult is a single fetched invoice with its applied marker.
type InvoiceResult struct {
	rls.Marker
	Invoice Invoice
}
