package api

import (
	"encoding/json"
	"net/http"
	"time"

	"fieldops/internal/domain"
)

type customerJSON struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func customerToAPI(c domain.Customer) customerJSON {
	return customerJSON{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	out, err := h.customers.List(r.Context(), domain.CustomerFilter{
		Search: r.URL.Query().Get("search"),
	}, page)
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]customerJSON, 0, len(out.Items))
	for _, c := range out.Items {
		items = append(items, customerToAPI(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"customers":       items,
		"total":           out.Total,
		"next_page_token": domain.NextPageToken(page, len(out.Items)),
	})
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	c, err := h.customers.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customerToAPI(*c))
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrValidation("invalid request body: %v", err))
		return
	}
	c, err := h.customers.Create(r.Context(), domain.CreateCustomerRequest{
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
		Address: body.Address,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customerToAPI(*c))
}
