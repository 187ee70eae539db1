package api

import (
	"net/http"
	"time"

	"fieldops/internal/domain"
)

type auditEntryJSON struct {
	ID            int64     `json:"id"`
	PrincipalName string    `json:"principal_name"`
	Action        string    `json:"action"`
	Resource      string    `json:"resource"`
	Status        string    `json:"status"`
	Detail        string    `json:"detail,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (h *Handler) SearchAudit(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	filter := domain.AuditFilter{
		PrincipalName: r.URL.Query().Get("principal"),
		Action:        r.URL.Query().Get("action"),
		Status:        r.URL.Query().Get("status"),
		Since:         queryTimePtr(r, "since"),
		Until:         queryTimePtr(r, "until"),
	}
	entries, total, err := h.audit.Search(r.Context(), filter, page)
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]auditEntryJSON, 0, len(entries))
	for _, e := range entries {
		items = append(items, auditEntryJSON{
			ID:            e.ID,
			PrincipalName: e.PrincipalName,
			Action:        e.Action,
			Resource:      e.Resource,
			Status:        e.Status,
			Detail:        e.Detail,
			CreatedAt:     e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries":         items,
		"total":           total,
		"next_page_token": domain.NextPageToken(page, len(entries)),
	})
}
