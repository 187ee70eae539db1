package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fieldops/internal/domain"
	"fieldops/internal/rls"
)

const workOrderColumns = `work_orders.id, work_orders.number, work_orders.customer_id, ` +
	`work_orders.assigned_technician_id, work_orders.contract_id, work_orders.status, ` +
	`work_orders.priority, work_orders.summary, work_orders.description, ` +
	`work_orders.scheduled_for, work_orders.completed_at, work_orders.created_at, work_orders.updated_at`

type WorkOrderRepo struct {
	db     *sql.DB
	engine *rls.Engine
}

func NewWorkOrderRepo(db *sql.DB, engine *rls.Engine) *WorkOrderRepo {
	return &WorkOrderRepo{db: db, engine: engine}
}

func (r *WorkOrderRepo) List(ctx context.Context, f domain.WorkOrderFilter, page domain.PageRequest, rctx *rls.Context) (*domain.WorkOrderList, error) {
	wb := &whereBuilder{}
	if f.Status != "" {
		wb.Addf("work_orders.status = $%d", f.Status)
	}
	if f.CustomerID != nil {
		wb.Addf("work_orders.customer_id = $%d", *f.CustomerID)
	}
	if f.TechnicianID != nil {
		wb.Addf("work_orders.assigned_technician_id = $%d", *f.TechnicianID)
	}
	if f.Search != "" {
		wb.Addf("work_orders.summary ILIKE $%d", "%"+f.Search+"%")
	}
	if f.ScheduledFrom != nil {
		wb.Addf("work_orders.scheduled_for >= $%d", *f.ScheduledFrom)
	}
	if f.ScheduledTo != nil {
		wb.Addf("work_orders.scheduled_for <= $%d", *f.ScheduledTo)
	}

	pred := r.engine.InterpretContext(rctx, "work_orders", 0)
	where, args := rls.Compose(wb.Clause(), wb.Args(), pred)

	var total int64
	if err := r.db.QueryRowContext(ctx, withWhere(`SELECT COUNT(*) FROM work_orders`, where), args...).Scan(&total); err != nil {
		return nil, err
	}

	query := withWhere(`SELECT `+workOrderColumns+` FROM work_orders`, where)
	query += fmt.Sprintf(" ORDER BY work_orders.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	listArgs := append(append([]any{}, args...), page.Limit(), page.Offset())

	rows, err := r.db.QueryContext(ctx, query, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &domain.WorkOrderList{Marker: rls.Marker{Applied: pred.Applied}, Total: total}
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, wo)
	}
	return out, rows.Err()
}

func (r *WorkOrderRepo) FindByID(ctx context.Context, id int64, rctx *rls.Context) (*domain.WorkOrderResult, error) {
	// The primary-key predicate already holds $1; the RLS predicate is
	// renumbered past it by Compose.
	pred := r.engine.InterpretContext(rctx, "work_orders", 0)
	where, args := rls.Compose("work_orders.id = $1", []any{id}, pred)

	row := r.db.QueryRowContext(ctx, withWhere(`SELECT `+workOrderColumns+` FROM work_orders`, where), args...)
	wo, err := scanWorkOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("work order %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &domain.WorkOrderResult{Marker: rls.Marker{Applied: pred.Applied}, WorkOrder: wo}, nil
}

func (r *WorkOrderRepo) Create(ctx context.Context, req domain.CreateWorkOrderRequest, number string) (*domain.WorkOrder, error) {
	wo := domain.WorkOrder{
		Number:               number,
		CustomerID:           req.CustomerID,
		AssignedTechnicianID: req.AssignedTechnicianID,
		ContractID:           req.ContractID,
		Status:               domain.StatusOpen,
		Priority:             req.Priority,
		Summary:              req.Summary,
		Description:          req.Description,
		ScheduledFor:         req.ScheduledFor,
	}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO work_orders (number, customer_id, assigned_technician_id, contract_id, status, priority, summary, description, scheduled_for) `+
			`VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at, updated_at`,
		wo.Number, wo.CustomerID, int64Null(wo.AssignedTechnicianID), int64Null(wo.ContractID),
		wo.Status, wo.Priority, wo.Summary, wo.Description, timeNull(wo.ScheduledFor),
	).Scan(&wo.ID, &wo.CreatedAt, &wo.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &wo, nil
}

func (r *WorkOrderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	var completed sql.NullTime
	if status == domain.StatusCompleted {
		completed = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE work_orders SET status = $1, completed_at = $2, updated_at = now() WHERE id = $3`,
		status, completed, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("work order %d not found", id)
	}
	return nil
}

func (r *WorkOrderRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM work_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("work order %d not found", id)
	}
	return nil
}

func (r *WorkOrderRepo) ListNotes(ctx context.Context, workOrderID int64, page domain.PageRequest, rctx *rls.Context) (*domain.NoteList, error) {
	// The parent pin doubles as the RLS predicate: ChildPredicate either
	// delegates to the already-authorized parent or ANDs the role's own
	// filter onto the pin.
	pred := r.engine.ChildPredicate(rctx, "work_order_id", "work_order_notes", 0, workOrderID)
	where, args := rls.Compose("", nil, pred)

	var total int64
	if err := r.db.QueryRowContext(ctx, withWhere(`SELECT COUNT(*) FROM work_order_notes`, where), args...).Scan(&total); err != nil {
		return nil, err
	}

	query := withWhere(`SELECT work_order_notes.id, work_order_notes.work_order_id, work_order_notes.author_id, work_order_notes.body, work_order_notes.created_at FROM work_order_notes`, where)
	query += fmt.Sprintf(" ORDER BY work_order_notes.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	listArgs := append(append([]any{}, args...), page.Limit(), page.Offset())

	rows, err := r.db.QueryContext(ctx, query, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &domain.NoteList{Marker: rls.Marker{Applied: pred.Applied}, Total: total}
	for rows.Next() {
		var n domain.WorkOrderNote
		if err := rows.Scan(&n.ID, &n.WorkOrderID, &n.AuthorID, &n.Body, &n.CreatedAt); err != nil {
			return nil, err
		}
		out.Items = append(out.Items, n)
	}
	return out, rows.Err()
}

func (r *WorkOrderRepo) CreateNote(ctx context.Context, note *domain.WorkOrderNote) (*domain.WorkOrderNote, error) {
	out := *note
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO work_order_notes (work_order_id, author_id, body) VALUES ($1, $2, $3) RETURNING id, created_at`,
		note.WorkOrderID, note.AuthorID, note.Body,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanWorkOrder(s scanner) (domain.WorkOrder, error) {
	var (
		wo           domain.WorkOrder
		technicianID sql.NullInt64
		contractID   sql.NullInt64
		scheduledFor sql.NullTime
		completedAt  sql.NullTime
	)
	err := s.Scan(&wo.ID, &wo.Number, &wo.CustomerID, &technicianID, &contractID,
		&wo.Status, &wo.Priority, &wo.Summary, &wo.Description,
		&scheduledFor, &completedAt, &wo.CreatedAt, &wo.UpdatedAt)
	if err != nil {
		return domain.WorkOrder{}, err
	}
	wo.AssignedTechnicianID = nullInt64Ptr(technicianID)
	wo.ContractID = nullInt64Ptr(contractID)
	wo.ScheduledFor = nullTimePtr(scheduledFor)
	wo.CompletedAt = nullTimePtr(completedAt)
	return wo, nil
}
