package api

import (
	"encoding/json"
	"net/http"
	"time"

	"fieldops/internal/domain"
)

type workOrderJSON struct {
	ID                   int64      `json:"id"`
	Number               string     `json:"number"`
	CustomerID           int64      `json:"customer_id"`
	AssignedTechnicianID *int64     `json:"assigned_technician_id,omitempty"`
	ContractID           *int64     `json:"contract_id,omitempty"`
	Status               string     `json:"status"`
	Priority             string     `json:"priority"`
	Summary              string     `json:"summary"`
	Description          string     `json:"description,omitempty"`
	ScheduledFor         *time.Time `json:"scheduled_for,omitempty"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func workOrderToAPI(wo domain.WorkOrder) workOrderJSON {
	return workOrderJSON{
		ID:                   wo.ID,
		Number:               wo.Number,
		CustomerID:           wo.CustomerID,
		AssignedTechnicianID: wo.AssignedTechnicianID,
		ContractID:           wo.ContractID,
		Status:               wo.Status,
		Priority:             wo.Priority,
		Summary:              wo.Summary,
		Description:          wo.Description,
		ScheduledFor:         wo.ScheduledFor,
		CompletedAt:          wo.CompletedAt,
		CreatedAt:            wo.CreatedAt,
		UpdatedAt:            wo.UpdatedAt,
	}
}

type noteJSON struct {
	ID          int64     `json:"id"`
	WorkOrderID int64     `json:"work_order_id"`
	AuthorID    int64     `json:"author_id"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *Handler) ListWorkOrders(w http.ResponseWriter, r *http.Request) {
	filter := domain.WorkOrderFilter{
		Status:        r.URL.Query().Get("status"),
		Search:        r.URL.Query().Get("search"),
		CustomerID:    queryInt64Ptr(r, "customer_id"),
		TechnicianID:  queryInt64Ptr(r, "technician_id"),
		ScheduledFrom: queryTimePtr(r, "scheduled_from"),
		ScheduledTo:   queryTimePtr(r, "scheduled_to"),
	}
	page := pageFromQuery(r)

	out, err := h.workOrders.List(r.Context(), filter, page)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]workOrderJSON, 0, len(out.Items))
	for _, wo := range out.Items {
		items = append(items, workOrderToAPI(wo))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"work_orders":     items,
		"total":           out.Total,
		"next_page_token": domain.NextPageToken(page, len(out.Items)),
	})
}

func (h *Handler) GetWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	wo, err := h.workOrders.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workOrderToAPI(*wo))
}

type createWorkOrderBody struct {
	CustomerID           int64      `json:"customer_id"`
	AssignedTechnicianID *int64     `json:"assigned_technician_id"`
	ContractID           *int64     `json:"contract_id"`
	Priority             string     `json:"priority"`
	Summary              string     `json:"summary"`
	Description          string     `json:"description"`
	ScheduledFor         *time.Time `json:"scheduled_for"`
}

func (h *Handler) CreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var body createWorkOrderBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrValidation("invalid request body: %v", err))
		return
	}
	wo, err := h.workOrders.Create(r.Context(), domain.CreateWorkOrderRequest{
		CustomerID:           body.CustomerID,
		AssignedTechnicianID: body.AssignedTechnicianID,
		ContractID:           body.ContractID,
		Priority:             body.Priority,
		Summary:              body.Summary,
		Description:          body.Description,
		ScheduledFor:         body.ScheduledFor,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, workOrderToAPI(*wo))
}

func (h *Handler) UpdateWorkOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrValidation("invalid request body: %v", err))
		return
	}
	wo, err := h.workOrders.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workOrderToAPI(*wo))
}

func (h *Handler) DeleteWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.workOrders.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListWorkOrderNotes(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page := pageFromQuery(r)
	out, err := h.workOrders.ListNotes(r.Context(), id, page)
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]noteJSON, 0, len(out.Items))
	for _, n := range out.Items {
		items = append(items, noteJSON{
			ID:          n.ID,
			WorkOrderID: n.WorkOrderID,
			AuthorID:    n.AuthorID,
			Body:        n.Body,
			CreatedAt:   n.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notes":           items,
		"total":           out.Total,
		"next_page_token": domain.NextPageToken(page, len(out.Items)),
	})
}

func (h *Handler) CreateWorkOrderNote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrValidation("invalid request body: %v", err))
		return
	}
	note, err := h.workOrders.CreateNote(r.Context(), id, body.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, noteJSON{
		ID:          note.ID,
		WorkOrderID: note.WorkOrderID,
		AuthorID:    note.AuthorID,
		Body:        note.Body,
		CreatedAt:   note.CreatedAt,
	})
}
