package domain

import (
	"time"

	"fieldops/internal/rls"
)

// Technician is a field worker profile work orders are assigned to.
type Technician struct {
	ID        int64
	Name      string
	Email     string
	Skills    string // comma-separated skill tags
	Active    bool
	CreatedAt time.Time
}

// TechnicianFilter holds search parameters for listing technicians.
type TechnicianFilter struct {
	Search     string
	ActiveOnly bool
}

// CreateTechnicianRequest carries the fields for creating a technician.
type CreateTechnicianRequest struct {
	Name   string
	Email  string
	Skills string
}

// TechnicianList is a page of technicians with its RLS applied marker.
type TechnicianList struct {
	rls.Marker
	Items []Technician
	Total int64
}

// TechnicianResult is a single fetched technician with its applied marker.
type TechnicianResult struct {
	rls.Marker
	Technician Technician
}
