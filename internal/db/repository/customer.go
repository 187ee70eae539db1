package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fieldops/internal/domain"
	"fieldops/internal/rls"
)

const customerColumns = `customers.id, customers.name, customers.email, customers.phone, customers.address, customers.created_at`

type CustomerRepo struct {
	db     *sql.DB
	engine *rls.Engine
}

func NewCustomerRepo(db *sql.DB, engine *rls.Engine) *CustomerRepo {
	return &CustomerRepo{db: db, engine: engine}
}

func (r *CustomerRepo) List(ctx context.Context, f domain.CustomerFilter, page domain.PageRequest, rctx *rls.Context) (*domain.CustomerList, error) {
	wb := &whereBuilder{}
	if f.Search != "" {
		wb.Addf("(customers.name ILIKE $%[1]d OR customers.email ILIKE $%[1]d)", "%"+f.Search+"%")
	}

	pred := r.engine.InterpretContext(rctx, "customers", 0)
	where, args := rls.Compose(wb.Clause(), wb.Args(), pred)

	var total int64
	if err := r.db.QueryRowContext(ctx, withWhere(`SELECT COUNT(*) FROM customers`, where), args...).Scan(&total); err != nil {
		return nil, err
	}

	query := withWhere(`SELECT `+customerColumns+` FROM customers`, where)
	query += fmt.Sprintf(" ORDER BY customers.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	listArgs := append(append([]any{}, args...), page.Limit(), page.Offset())

	rows, err := r.db.QueryContext(ctx, query, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &domain.CustomerList{Marker: rls.Marker{Applied: pred.Applied}, Total: total}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, err
		}
		out.Items = append(out.Items, c)
	}
	return out, rows.Err()
}

func (r *CustomerRepo) FindByID(ctx context.Context, id int64, rctx *rls.Context) (*domain.CustomerResult, error) {
	pred := r.engine.InterpretContext(rctx, "customers", 0)
	where, args := rls.Compose("customers.id = $1", []any{id}, pred)

	var c domain.Customer
	err := r.db.QueryRowContext(ctx, withWhere(`SELECT `+customerColumns+` FROM customers`, where), args...).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("customer %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &domain.CustomerResult{Marker: rls.Marker{Applied: pred.Applied}, Customer: c}, nil
}

func (r *CustomerRepo) Create(ctx context.Context, req domain.CreateCustomerRequest) (*domain.Customer, error) {
	c := domain.Customer{Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO customers (name, email, phone, address) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		c.Name, c.Email, c.Phone, c.Address,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
