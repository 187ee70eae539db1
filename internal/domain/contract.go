package domain

import (
	"time"

	"fieldops/internal/rls"
)

// Contract is a service agreement covering a customer's work orders.
type Contract struct {
	ID         int64
	CustomerID int64
	Name       string
	StartsAt   time.Time
	EndsAt     *time.Time
	Active     bool
	CreatedAt  time.Time
}

// ContractFilter holds search parameters for listing contracts.
type ContractFilter struct {
	CustomerID *int64
	ActiveOnly bool
}

// ContractList is a page of contracts with its RLS applied marker.
type ContractList struct {
	rls.Marker
	Items []Contract
	Total int64
}

// ContractResult is a single fetched contract with its applied marker.
type ContractResult struct {
	rls.Marker
	Contract Contract
}
