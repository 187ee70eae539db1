package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fieldops/internal/domain"
	"fieldops/internal/rls"
)

const invoiceColumns = `invoices.id, invoices.number, invoices.work_order_id, invoices.customer_id, invoices.amount_cents, invoices.status, invoices.issued_at, invoices.due_at, invoices.created_at`

type InvoiceRepo struct {
	db     *sql.DB
	engine *rls.Engine
}

func NewInvoiceRepo(db *sql.DB, engine *rls.Engine) *InvoiceRepo {
	return &InvoiceRepo{db: db, engine: engine}
}

func (r *InvoiceRepo) List(ctx context.Context, f domain.InvoiceFilter, page domain.PageRequest, rctx *rls.Context) (*domain.InvoiceList, error) {
	wb := &whereBuilder{}
	if f.Status != "" {
		wb.Addf("invoices.status = $%d", f.Status)
	}
	if f.CustomerID != nil {
		wb.Addf("invoices.customer_id = $%d", *f.CustomerID)
	}

	pred := r.engine.InterpretContext(rctx, "invoices", 0)
	where, args := rls.Compose(wb.Clause(), wb.Args(), pred)

	var total int64
	if err := r.db.QueryRowContext(ctx, withWhere(`SELECT COUNT(*) FROM invoices`, where), args...).Scan(&total); err != nil {
		return nil, err
	}

	query := withWhere(`SELECT `+invoiceColumns+` FROM invoices`, where)
	query += fmt.Sprintf(" ORDER BY invoices.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	listArgs := append(append([]any{}, args...), page.Limit(), page.Offset())

	rows, err := r.db.QueryContext(ctx, query, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &domain.InvoiceList{Marker: rls.Marker{Applied: pred.Applied}, Total: total}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, inv)
	}
	return out, rows.Err()
}

func (r *InvoiceRepo) FindByID(ctx context.Context, id int64, rctx *rls.Context) (*domain.InvoiceResult, error) {
	pred := r.engine.InterpretContext(rctx, "invoices", 0)
	where, args := rls.Compose("invoices.id = $1", []any{id}, pred)

	row := r.db.QueryRowContext(ctx, withWhere(`SELECT `+invoiceColumns+` FROM invoices`, where), args...)
	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("invoice %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &domain.InvoiceResult{Marker: rls.Marker{Applied: pred.Applied}, Invoice: inv}, nil
}

func scanInvoice(s scanner) (domain.Invoice, error) {
	var (
		inv      domain.Invoice
		issuedAt sql.NullTime
		dueAt    sql.NullTime
	)
	err := s.Scan(&inv.ID, &inv.Number, &inv.WorkOrderID, &inv.CustomerID,
		&inv.AmountCents, &inv.Status, &issuedAt, &dueAt, &inv.CreatedAt)
	if err != nil {
		return domain.Invoice{}, err
	}
	inv.IssuedAt = nullTimePtr(issuedAt)
	inv.DueAt = nullTimePtr(dueAt)
	return inv, nil
}
