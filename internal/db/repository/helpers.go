// Package repository implements the domain data-access ports against
// PostgreSQL. Every RLS-filtered read composes the engine's predicate into
// its WHERE clause and stamps the applied marker on the result.
package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// whereBuilder accumulates AND-joined conditions with $N placeholders
// numbered by insertion order. format must contain one %d verb for the
// placeholder number of val.
type whereBuilder struct {
	conds []string
	args  []any
}

func (b *whereBuilder) Addf(format string, val any) {
	b.conds = append(b.conds, fmt.Sprintf(format, len(b.args)+1))
	b.args = append(b.args, val)
}

func (b *whereBuilder) Clause() string { return strings.Join(b.conds, " AND ") }

func (b *whereBuilder) Args() []any { return b.args }

// withWhere appends a WHERE clause (already carrying the keyword) to a query.
func withWhere(query, where string) string {
	if where == "" {
		return query
	}
	return query + " " + where
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func int64Null(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func timeNull(p *time.Time) sql.NullTime {
	if p == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *p, Valid: true}
}
