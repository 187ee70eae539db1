package domain

import (
	"time"

	"fieldops/internal/rls"
)

// Customer is a billing/service account rows are scoped to.
type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
}

// CustomerFilter holds search parameters for listing customers.
type CustomerFilter struct {
	Search string // matches name or email, case-insensitive
}

// CreateCustomerRequest carries the fields for creating a customer.
type CreateCustomerRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// CustomerList is a page of customers with its RLS applied marker.
type CustomerList struct {
	rls.Marker
	Items []Customer
	Total int64
}

// CustomerResult is a single fetched customer with its applied marker.
type CustomerResult struct {
	rls.Marker
	Customer Customer
}
