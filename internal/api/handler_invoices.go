package api

import (
	"net/http"
	"time"

	"fieldops/internal/domain"
)

type invoiceJSON struct {
	ID          int64      `json:"id"`
	Number      string     `json:"number"`
	WorkOrderID int64      `json:"work_order_id"`
	CustomerID  int64      `json:"customer_id"`
	AmountCents int64      `json:"amount_cents"`
	Status      string     `json:"status"`
	IssuedAt    *time.Time `json:"issued_at,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func invoiceToAPI(inv domain.Invoice) invoiceJSON {
	return invoiceJSON{
		ID:          inv.ID,
		Number:      inv.Number,
		WorkOrderID: inv.WorkOrderID,
		CustomerID:  inv.CustomerID,
		AmountCents: inv.AmountCents,
		Status:      inv.Status,
		IssuedAt:    inv.IssuedAt,
		DueAt:       inv.DueAt,
		CreatedAt:   inv.CreatedAt,
	}
}

func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	out, err := h.invoices.List(r.Context(), domain.InvoiceFilter{
		Status:     r.URL.Query().Get("status"),
		CustomerID: queryInt64Ptr(r, "customer_id"),
	}, page)
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]invoiceJSON, 0, len(out.Items))
	for _, inv := range out.Items {
		items = append(items, invoiceToAPI(inv))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"invoices":        items,
		"total":           out.Total,
		"next_page_token": domain.NextPageToken(page, len(out.Items)),
	})
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	inv, err := h.invoices.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoiceToAPI(*inv))
}
