package api

import (
	"net/http"
	"time"

	"fieldops/internal/domain"
)

type contractJSON struct {
	ID         int64      `json:"id"`
	CustomerID int64      `json:"customer_id"`
	Name       string     `json:"name"`
	StartsAt   time.Time  `json:"starts_at"`
	EndsAt     *time.Time `json:"ends_at,omitempty"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
}

func contractToAPI(c domain.Contract) contractJSON {
	return contractJSON{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		Name:       c.Name,
		StartsAt:   c.StartsAt,
		EndsAt:     c.EndsAt,
		Active:     c.Active,
		CreatedAt:  c.CreatedAt,
	}
}

func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	out, err := h.contracts.List(r.Context(), domain.ContractFilter{
		CustomerID: queryInt64Ptr(r, "customer_id"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}, page)
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]contractJSON, 0, len(out.Items))
	for _, c := range out.Items {
		items = append(items, contractToAPI(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"contracts":       items,
		"total":           out.Total,
		"next_page_token": domain.NextPageToken(page, len(out.Items)),
	})
}

func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	c, err := h.contracts.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contractToAPI(*c))
}
