package repository

import (
	"context"
	"database/sql"
	"fmt"

	"fieldops/internal/domain"
)

type AuditRepo struct {
	db *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (principal_name, action, resource, status, detail) VALUES ($1, $2, $3, $4, $5)`,
		e.PrincipalName, e.Action, e.Resource, e.Status, e.Detail)
	return err
}

func (r *AuditRepo) Search(ctx context.Context, f domain.AuditFilter, page domain.PageRequest) ([]domain.AuditEntry, int64, error) {
	wb := &whereBuilder{}
	if f.PrincipalName != "" {
		wb.Addf("audit_log.principal_name = $%d", f.PrincipalName)
	}
	if f.Action != "" {
		wb.Addf("audit_log.action = $%d", f.Action)
	}
	if f.Status != "" {
		wb.Addf("audit_log.status = $%d", f.Status)
	}
	if f.Since != nil {
		wb.Addf("audit_log.created_at >= $%d", *f.Since)
	}
	if f.Until != nil {
		wb.Addf("audit_log.created_at <= $%d", *f.Until)
	}

	where := wb.Clause()
	if where != "" {
		where = "WHERE " + where
	}
	args := wb.Args()

	var total int64
	if err := r.db.QueryRowContext(ctx, withWhere(`SELECT COUNT(*) FROM audit_log`, where), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := withWhere(`SELECT audit_log.id, audit_log.principal_name, audit_log.action, audit_log.resource, audit_log.status, audit_log.detail, audit_log.created_at FROM audit_log`, where)
	query += fmt.Sprintf(" ORDER BY audit_log.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(append([]any{}, args...), page.Limit(), page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.PrincipalName, &e.Action, &e.Resource, &e.Status, &e.Detail, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

func (r *AuditRepo) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM audit_log WHERE created_at < now() - ($1 || ' days')::interval`, days)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var _ domain.AuditRepository = (*AuditRepo)(nil)

// interface conformance for the RLS-aware repos
var (
	_ domain.WorkOrderRepository  = (*WorkOrderRepo)(nil)
	_ domain.CustomerRepository   = (*CustomerRepo)(nil)
	_ domain.TechnicianRepository = (*TechnicianRepo)(nil)
	_ domain.InvoiceRepository    = (*InvoiceRepo)(nil)
	_ domain.ContractRepository   = (*ContractRepo)(nil)
	_ domain.PrincipalRepository  = (*PrincipalRepo)(nil)
)
