package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder_NumbersByInsertionOrder(t *testing.T) {
	wb := &whereBuilder{}
	wb.Addf("a = $%d", 1)
	wb.Addf("b ILIKE $%d", "x%")
	wb.Addf("c >= $%d", 3)

	assert.Equal(t, "a = $1 AND b ILIKE $2 AND c >= $3", wb.Clause())
	assert.Equal(t, []any{1, "x%", 3}, wb.Args())
}

func TestWhereBuilder_RepeatedPlaceholderVerb(t *testing.T) {
	wb := &whereBuilder{}
	wb.Addf("x = $%d", 1)
	wb.Addf("(name ILIKE $%[1]d OR email ILIKE $%[1]d)", "%a%")

	assert.Equal(t, "x = $1 AND (name ILIKE $2 OR email ILIKE $2)", wb.Clause())
	assert.Len(t, wb.Args(), 2)
}

func TestWhereBuilder_Empty(t *testing.T) {
	wb := &whereBuilder{}
	assert.Empty(t, wb.Clause())
	assert.Empty(t, wb.Args())
	assert.Equal(t, "SELECT 1", withWhere("SELECT 1", ""))
	assert.Equal(t, "SELECT 1 WHERE a = $1", withWhere("SELECT 1", "WHERE a = $1"))
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, nullInt64Ptr(sql.NullInt64{}))
	v := nullInt64Ptr(sql.NullInt64{Int64: 9, Valid: true})
	assert.Equal(t, int64(9), *v)

	assert.Nil(t, nullTimePtr(sql.NullTime{}))
	now := time.Now()
	assert.Equal(t, now, *nullTimePtr(sql.NullTime{Time: now, Valid: true}))

	assert.False(t, int64Null(nil).Valid)
	assert.True(t, int64Null(v).Valid)
	assert.False(t, timeNull(nil).Valid)
	assert.True(t, timeNull(&now).Valid)
}
