package domain

// Resource names used by routes and the policy table. Every RLS-protected
// read must resolve one of these before touching data.
const (
	ResourceWorkOrders     = "work_orders"
	ResourceWorkOrderNotes = "work_order_notes"
	ResourceCustomers      = "customers"
	ResourceTechnicians    = "technicians"
	ResourceInvoices       = "invoices"
	ResourceContracts      = "contracts"
	ResourceAuditLog       = "audit_log"
)
