package policy

import "fieldops/internal/rls"

// Default returns the built-in policy table used by dev mode and seeding.
// Operators override it with a policy file in production.
func Default() Table {
	return Table{
		"admin": {
			"work_orders":      rls.AllRecords(),
			"work_order_notes": rls.AllRecords(),
			"customers":        rls.AllRecords(),
			"technicians":      rls.AllRecords(),
			"invoices":         rls.AllRecords(),
			"contracts":        rls.AllRecords(),
			"audit_log":        rls.AllRecords(),
		},
		"dispatcher": {
			"work_orders":      rls.AllRecords(),
			"work_order_notes": rls.AllRecords(),
			"customers":        rls.AllRecords(),
			"technicians":      rls.AllRecords(),
			"invoices":         rls.DenyAll(),
			"contracts":        rls.AllRecords(),
			"audit_log":        rls.DenyAll(),
		},
		"technician": {
			"work_orders":      rls.FieldEquals("assigned_technician_id", rls.KeyTechnicianProfileID),
			"work_order_notes": rls.ParentDelegated(),
			"customers":        rls.DenyAll(),
			"technicians":      rls.FieldEquals("id", rls.KeyTechnicianProfileID),
			"invoices":         rls.DenyAll(),
			"contracts":        rls.DenyAll(),
			"audit_log":        rls.DenyAll(),
		},
		"customer": {
			"work_orders":      rls.FieldEquals("customer_id", rls.KeyCustomerProfileID),
			"work_order_notes": rls.ParentDelegated(),
			"customers":        rls.FieldEquals("id", rls.KeyCustomerProfileID),
			"technicians":      rls.DenyAll(),
			"invoices":         rls.FieldEquals("customer_id", rls.KeyCustomerProfileID),
			"contracts":        rls.FieldEquals("customer_id", rls.KeyCustomerProfileID),
			"audit_log":        rls.DenyAll(),
		},
	}
}
