package api

import (
	"encoding/json"
	"net/http"
	"time"

	"fieldops/internal/domain"
)

type technicianJSON struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Skills    string    `json:"skills,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func technicianToAPI(t domain.Technician) technicianJSON {
	return technicianJSON{
		ID:        t.ID,
		Name:      t.Name,
		Email:     t.Email,
		Skills:    t.Skills,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
	}
}

func (h *Handler) ListTechnicians(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	out, err := h.technicians.List(r.Context(), domain.TechnicianFilter{
		Search:     r.URL.Query().Get("search"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}, page)
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]technicianJSON, 0, len(out.Items))
	for _, t := range out.Items {
		items = append(items, technicianToAPI(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"technicians":     items,
		"total":           out.Total,
		"next_page_token": domain.NextPageToken(page, len(out.Items)),
	})
}

func (h *Handler) GetTechnician(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	t, err := h.technicians.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, technicianToAPI(*t))
}

func (h *Handler) CreateTechnician(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Skills string `json:"skills"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrValidation("invalid request body: %v", err))
		return
	}
	t, err := h.technicians.Create(r.Context(), domain.CreateTechnicianRequest{
		Name:   body.Name,
		Email:  body.Email,
		Skills: body.Skills,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, technicianToAPI(*t))
}
