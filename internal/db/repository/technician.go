package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fieldops/internal/domain"
	"fieldops/internal/rls"
)

const technicianColumns = `technicians.id, technicians.name, technicians.email, technicians.skills, technicians.active, technicians.created_at`

type TechnicianRepo struct {
	db     *sql.DB
	engine *rls.Engine
}

func NewTechnicianRepo(db *sql.DB, engine *rls.Engine) *TechnicianRepo {
	return &TechnicianRepo{db: db, engine: engine}
}

func (r *TechnicianRepo) List(ctx context.Context, f domain.TechnicianFilter, page domain.PageRequest, rctx *rls.Context) (*domain.TechnicianList, error) {
	wb := &whereBuilder{}
	if f.Search != "" {
		wb.Addf("(technicians.name ILIKE $%[1]d OR technicians.skills ILIKE $%[1]d)", "%"+f.Search+"%")
	}
	if f.ActiveOnly {
		wb.Addf("technicians.active = $%d", true)
	}

	pred := r.engine.InterpretContext(rctx, "technicians", 0)
	where, args := rls.Compose(wb.Clause(), wb.Args(), pred)

	var total int64
	if err := r.db.QueryRowContext(ctx, withWhere(`SELECT COUNT(*) FROM technicians`, where), args...).Scan(&total); err != nil {
		return nil, err
	}

	query := withWhere(`SELECT `+technicianColumns+` FROM technicians`, where)
	query += fmt.Sprintf(" ORDER BY technicians.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	listArgs := append(append([]any{}, args...), page.Limit(), page.Offset())

	rows, err := r.db.QueryContext(ctx, query, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &domain.TechnicianList{Marker: rls.Marker{Applied: pred.Applied}, Total: total}
	for rows.Next() {
		var t domain.Technician
		if err := rows.Scan(&t.ID, &t.Name, &t.Email, &t.Skills, &t.Active, &t.CreatedAt); err != nil {
			return nil, err
		}
		out.Items = append(out.Items, t)
	}
	return out, rows.Err()
}

func (r *TechnicianRepo) FindByID(ctx context.Context, id int64, rctx *rls.Context) (*domain.TechnicianResult, error) {
	pred := r.engine.InterpretContext(rctx, "technicians", 0)
	where, args := rls.Compose("technicians.id = $1", []any{id}, pred)

	var t domain.Technician
	err := r.db.QueryRowContext(ctx, withWhere(`SELECT `+technicianColumns+` FROM technicians`, where), args...).
		Scan(&t.ID, &t.Name, &t.Email, &t.Skills, &t.Active, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("technician %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &domain.TechnicianResult{Marker: rls.Marker{Applied: pred.Applied}, Technician: t}, nil
}

func (r *TechnicianRepo) Create(ctx context.Context, req domain.CreateTechnicianRequest) (*domain.Technician, error) {
	t := domain.Technician{Name: req.Name, Email: req.Email, Skills: req.Skills, Active: true}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO technicians (name, email, skills, active) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		t.Name, t.Email, t.Skills, t.Active,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
