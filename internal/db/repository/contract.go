package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fieldops/internal/domain"
	"fieldops/internal/rls"
)

const contractColumns = `contracts.id, contracts.customer_id, contracts.name, contracts.starts_at, contracts.ends_at, contracts.active, contracts.created_at`

type ContractRepo struct {
	db     *sql.DB
	engine *rls.Engine
}

func NewContractRepo(db *sql.DB, engine *rls.Engine) *ContractRepo {
	return &ContractRepo{db: db, engine: engine}
}

func (r *ContractRepo) List(ctx context.Context, f domain.ContractFilter, page domain.PageRequest, rctx *rls.Context) (*domain.ContractList, error) {
	wb := &whereBuilder{}
	if f.CustomerID != nil {
		wb.Addf("contracts.customer_id = $%d", *f.CustomerID)
	}
	if f.ActiveOnly {
		wb.Addf("contracts.active = $%d", true)
	}

	pred := r.engine.InterpretContext(rctx, "contracts", 0)
	where, args := rls.Compose(wb.Clause(), wb.Args(), pred)

	var total int64
	if err := r.db.QueryRowContext(ctx, withWhere(`SELECT COUNT(*) FROM contracts`, where), args...).Scan(&total); err != nil {
		return nil, err
	}

	query := withWhere(`SELECT `+contractColumns+` FROM contracts`, where)
	query += fmt.Sprintf(" ORDER BY contracts.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	listArgs := append(append([]any{}, args...), page.Limit(), page.Offset())

	rows, err := r.db.QueryContext(ctx, query, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &domain.ContractList{Marker: rls.Marker{Applied: pred.Applied}, Total: total}
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, c)
	}
	return out, rows.Err()
}

func (r *ContractRepo) FindByID(ctx context.Context, id int64, rctx *rls.Context) (*domain.ContractResult, error) {
	pred := r.engine.InterpretContext(rctx, "contracts", 0)
	where, args := rls.Compose("contracts.id = $1", []any{id}, pred)

	row := r.db.QueryRowContext(ctx, withWhere(`SELECT `+contractColumns+` FROM contracts`, where), args...)
	c, err := scanContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("contract %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &domain.ContractResult{Marker: rls.Marker{Applied: pred.Applied}, Contract: c}, nil
}

func scanContract(s scanner) (domain.Contract, error) {
	var (
		c      domain.Contract
		endsAt sql.NullTime
	)
	err := s.Scan(&c.ID, &c.CustomerID, &c.Name, &c.StartsAt, &endsAt, &c.Active, &c.CreatedAt)
	if err != nil {
		return domain.Contract{}, err
	}
	c.EndsAt = nullTimePtr(endsAt)
	return c, nil
}
