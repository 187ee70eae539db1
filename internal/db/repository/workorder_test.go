package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops/internal/domain"
	"fieldops/internal/rls"
)

func intp(v int64) *int64 { return &v }

func newMock(t *testing.T) (*WorkOrderRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	engine := rls.NewEngine(func(string, string) rls.FilterConfig { return rls.DenyAll() }, nil)
	return NewWorkOrderRepo(db, engine), mock
}

func technicianCtx() *rls.Context {
	return &rls.Context{
		Resource:     domain.ResourceWorkOrders,
		Role:         domain.RoleTechnician,
		FilterConfig: rls.FieldEquals("assigned_technician_id", rls.KeyTechnicianProfileID),
		Identifiers:  rls.Identifiers{rls.KeyUserID: intp(3), rls.KeyTechnicianProfileID: intp(10)},
	}
}

func workOrderRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "number", "customer_id", "assigned_technician_id", "contract_id",
		"status", "priority", "summary", "description",
		"scheduled_for", "completed_at", "created_at", "updated_at",
	})
	now := time.Now()
	for _, id := range ids {
		rows.AddRow(id, "WO-1", int64(4), int64(10), nil,
			domain.StatusOpen, "normal", "replace compressor", "",
			nil, nil, now, now)
	}
	return rows
}

func TestWorkOrderRepo_ListComposesRLSAfterSearchFilters(t *testing.T) {
	repo, mock := newMock(t)
	rctx := technicianCtx()

	mock.ExpectQuery(`SELECT COUNT(*) FROM work_orders WHERE work_orders.status = $1 AND work_orders.assigned_technician_id = $2`).
		WithArgs(domain.StatusOpen, int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT ` + workOrderColumns + ` FROM work_orders WHERE work_orders.status = $1 AND work_orders.assigned_technician_id = $2 ORDER BY work_orders.id DESC LIMIT $3 OFFSET $4`).
		WithArgs(domain.StatusOpen, int64(10), domain.DefaultMaxResults, 0).
		WillReturnRows(workOrderRows(7))

	out, err := repo.List(context.Background(), domain.WorkOrderFilter{Status: domain.StatusOpen}, domain.PageRequest{}, rctx)
	require.NoError(t, err)
	assert.True(t, out.RLSApplied())
	assert.Equal(t, int64(1), out.Total)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(7), out.Items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkOrderRepo_ListUnfilteredBaseStillCarriesRLS(t *testing.T) {
	repo, mock := newMock(t)
	rctx := technicianCtx()

	mock.ExpectQuery(`SELECT COUNT(*) FROM work_orders WHERE work_orders.assigned_technician_id = $1`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT ` + workOrderColumns + ` FROM work_orders WHERE work_orders.assigned_technician_id = $1 ORDER BY work_orders.id DESC LIMIT $2 OFFSET $3`).
		WithArgs(int64(10), domain.DefaultMaxResults, 0).
		WillReturnRows(workOrderRows())

	out, err := repo.List(context.Background(), domain.WorkOrderFilter{}, domain.PageRequest{}, rctx)
	require.NoError(t, err)
	assert.True(t, out.RLSApplied())
	assert.Empty(t, out.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkOrderRepo_ListDenyAllYieldsImpossiblePredicate(t *testing.T) {
	repo, mock := newMock(t)
	rctx := &rls.Context{
		Resource:     domain.ResourceWorkOrders,
		Role:         domain.RoleCustomer,
		FilterConfig: rls.DenyAll(),
	}

	mock.ExpectQuery(`SELECT COUNT(*) FROM work_orders WHERE 1=0`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT ` + workOrderColumns + ` FROM work_orders WHERE 1=0 ORDER BY work_orders.id DESC LIMIT $1 OFFSET $2`).
		WithArgs(domain.DefaultMaxResults, 0).
		WillReturnRows(workOrderRows())

	out, err := repo.List(context.Background(), domain.WorkOrderFilter{}, domain.PageRequest{}, rctx)
	require.NoError(t, err)
	assert.True(t, out.RLSApplied())
	assert.Empty(t, out.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkOrderRepo_ListNilContextNotApplied(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT COUNT(*) FROM work_orders`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT ` + workOrderColumns + ` FROM work_orders ORDER BY work_orders.id DESC LIMIT $1 OFFSET $2`).
		WithArgs(domain.DefaultMaxResults, 0).
		WillReturnRows(workOrderRows(1, 2))

	out, err := repo.List(context.Background(), domain.WorkOrderFilter{}, domain.PageRequest{}, nil)
	require.NoError(t, err)
	assert.False(t, out.RLSApplied())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkOrderRepo_FindByIDStartsRLSAfterPrimaryKey(t *testing.T) {
	repo, mock := newMock(t)
	rctx := technicianCtx()

	mock.ExpectQuery(`SELECT ` + workOrderColumns + ` FROM work_orders WHERE work_orders.id = $1 AND work_orders.assigned_technician_id = $2`).
		WithArgs(int64(55), int64(10)).
		WillReturnRows(workOrderRows(55))

	out, err := repo.FindByID(context.Background(), 55, rctx)
	require.NoError(t, err)
	assert.True(t, out.RLSApplied())
	assert.Equal(t, int64(55), out.WorkOrder.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkOrderRepo_FindByIDNotFound(t *testing.T) {
	repo, mock := newMock(t)
	rctx := technicianCtx()

	mock.ExpectQuery(`SELECT ` + workOrderColumns + ` FROM work_orders WHERE work_orders.id = $1 AND work_orders.assigned_technician_id = $2`).
		WithArgs(int64(99), int64(10)).
		WillReturnRows(workOrderRows())

	_, err := repo.FindByID(context.Background(), 99, rctx)
	require.Error(t, err)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkOrderRepo_ListNotesDelegatedPin(t *testing.T) {
	repo, mock := newMock(t)
	rctx := &rls.Context{
		Resource:     domain.ResourceWorkOrderNotes,
		Role:         domain.RoleTechnician,
		FilterConfig: rls.ParentDelegated(),
		Identifiers:  rls.Identifiers{rls.KeyUserID: intp(3), rls.KeyTechnicianProfileID: intp(10)},
	}

	mock.ExpectQuery(`SELECT COUNT(*) FROM work_order_notes WHERE work_order_notes.work_order_id = $1`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT work_order_notes.id, work_order_notes.work_order_id, work_order_notes.author_id, work_order_notes.body, work_order_notes.created_at FROM work_order_notes WHERE work_order_notes.work_order_id = $1 ORDER BY work_order_notes.id LIMIT $2 OFFSET $3`).
		WithArgs(int64(42), domain.DefaultMaxResults, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "work_order_id", "author_id", "body", "created_at"}).
			AddRow(1, 42, 3, "swapped the valve", time.Now()))

	out, err := repo.ListNotes(context.Background(), 42, domain.PageRequest{}, rctx)
	require.NoError(t, err)
	assert.True(t, out.RLSApplied())
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(42), out.Items[0].WorkOrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkOrderRepo_UpdateStatusNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE work_orders SET status = $1, completed_at = $2, updated_at = now() WHERE id = $3`).
		WithArgs(domain.StatusCancelled, sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 5, domain.StatusCancelled)
	require.Error(t, err)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
