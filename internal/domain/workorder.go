package domain

import (
	"time"

	"fieldops/internal/rls"
)

// Work order statuses.
const (
	StatusOpen       = "open"
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Work order priorities.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidPriority reports whether p is a recognized work order priority.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ValidStatus reports whether s is a recognized work order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// WorkOrder is a unit of field work scheduled for a customer, optionally
// assigned to a technician and covered by a contract.
type WorkOrder struct {
	ID                   int64
	Number               string // human-facing identifier, e.g. WO-7f3a2c
	CustomerID           int64
	AssignedTechnicianID *int64
	ContractID           *int64
	Status               string
	Priority             string
	Summary              string
	Description          string
	ScheduledFor         *time.Time
	CompletedAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// WorkOrderNote is a sub-entity of a work order; its access is delegated to
// the parent work order for scoped roles.
type WorkOrderNote struct {
	ID          int64
	WorkOrderID int64
	AuthorID    int64
	Body        string
	CreatedAt   time.Time
}

// WorkOrderFilter holds the search/filter parameters for listing work
// orders, independent of RLS.
type WorkOrderFilter struct {
	Status        string
	CustomerID    *int64
	TechnicianID  *int64
	Search        string // matches summary, case-insensitive
	ScheduledFrom *time.Time
	ScheduledTo   *time.Time
}

// CreateWorkOrderRequest carries the fields for creating a work order.
type CreateWorkOrderRequest struct {
	CustomerID           int64
	AssignedTechnicianID *int64
	ContractID           *int64
	Priority             string
	Summary              string
	Description          string
	ScheduledFor         *time.Time
}

// WorkOrderList is a page of work orders; the embedded marker records
// whether row filtering was applied when it was fetched.
type WorkOrderList struct {
	rls.Marker
	Items []WorkOrder
	Total int64
}

// WorkOrderResult is a single fetched work order with its applied marker.
type WorkOrderResult struct {
	rls.Marker
	WorkOrder WorkOrder
}

// NoteList is a page of work order notes with its applied marker.
type NoteList struct {
	rls.Marker
	Items []WorkOrderNote
	Total int64
}
