package repository

import (
	"context"
	"database/sql"
	"errors"

	"fieldops/internal/domain"
)

const principalColumns = `principals.id, principals.external_id, principals.name, principals.email, principals.role, principals.customer_profile_id, principals.technician_profile_id, principals.created_at`

type PrincipalRepo struct {
	db *sql.DB
}

func NewPrincipalRepo(db *sql.DB) *PrincipalRepo {
	return &PrincipalRepo{db: db}
}

func (r *PrincipalRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.Principal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+principalColumns+` FROM principals WHERE principals.external_id = $1`, externalID)
	return scanPrincipal(row, externalID)
}

func (r *PrincipalRepo) GetByID(ctx context.Context, id int64) (*domain.Principal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+principalColumns+` FROM principals WHERE principals.id = $1`, id)
	p, err := scanPrincipal(row, "")
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, domain.ErrNotFound("principal %d not found", id)
		}
		return nil, err
	}
	return p, nil
}

func (r *PrincipalRepo) Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error) {
	out := *p
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO principals (external_id, name, email, role, customer_profile_id, technician_profile_id) `+
			`VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		p.ExternalID, p.Name, p.Email, p.Role, int64Null(p.CustomerProfileID), int64Null(p.TechnicianProfileID),
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanPrincipal(row *sql.Row, externalID string) (*domain.Principal, error) {
	var (
		p             domain.Principal
		customerID    sql.NullInt64
		technicianID  sql.NullInt64
	)
	err := row.Scan(&p.ID, &p.ExternalID, &p.Name, &p.Email, &p.Role, &customerID, &technicianID, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("principal %q not found", externalID)
	}
	if err != nil {
		return nil, err
	}
	p.CustomerProfileID = nullInt64Ptr(customerID)
	p.TechnicianProfileID = nullInt64Ptr(technicianID)
	return &p, nil
}
