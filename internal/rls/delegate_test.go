package rls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func delegatedCtx() *Context {
	return &Context{
		Resource:     "work_order_notes",
		Role:         "technician",
		FilterConfig: ParentDelegated(),
		Identifiers:  Identifiers{KeyUserID: intp(3), KeyTechnicianProfileID: intp(10)},
	}
}

func TestDelegateToParent_PinsToAuthorizedParent(t *testing.T) {
	res := DelegateToParent(delegatedCtx(), "work_order_id", "work_order_notes", 0, 42)
	require.False(t, res.DenyAll)
	assert.Equal(t, "work_order_notes.work_order_id = $1", res.Clause)
	assert.Equal(t, []any{int64(42)}, res.Args)
	assert.True(t, res.Applied)
}

func TestDelegateToParent_HonorsOffset(t *testing.T) {
	res := DelegateToParent(delegatedCtx(), "work_order_id", "n", 3, 42)
	assert.Equal(t, "n.work_order_id = $4", res.Clause)
}

func TestDelegateToParent_RefusesNonDelegatedConfigs(t *testing.T) {
	for _, cfg := range []FilterConfig{AllRecords(), DenyAll(), FieldEqualsUser("user_id"), {}} {
		rctx := delegatedCtx()
		rctx.FilterConfig = cfg
		res := DelegateToParent(rctx, "work_order_id", "n", 0, 42)
		assert.True(t, res.DenyAll, "config %s must not delegate", cfg)
	}
}

func TestDelegateToParent_RefusesMissingInputs(t *testing.T) {
	assert.True(t, DelegateToParent(nil, "work_order_id", "n", 0, 42).DenyAll)
	assert.True(t, DelegateToParent(delegatedCtx(), "", "n", 0, 42).DenyAll)
}

func TestChildPredicate_DelegatedPinsOnly(t *testing.T) {
	e := NewEngine(denyLookup, nil)
	res := e.ChildPredicate(delegatedCtx(), "work_order_id", "work_order_notes", 0, 42)
	assert.Equal(t, "work_order_notes.work_order_id = $1", res.Clause)
	assert.Equal(t, []any{int64(42)}, res.Args)
}

func TestChildPredicate_AllRecordsStillPinned(t *testing.T) {
	e := NewEngine(denyLookup, nil)
	rctx := delegatedCtx()
	rctx.FilterConfig = AllRecords()
	res := e.ChildPredicate(rctx, "work_order_id", "n", 0, 42)
	require.False(t, res.DenyAll)
	assert.Equal(t, "n.work_order_id = $1", res.Clause)
	assert.Equal(t, []any{int64(42)}, res.Args)
}

func TestChildPredicate_OwnFilterANDedOntoPin(t *testing.T) {
	e := NewEngine(denyLookup, nil)
	rctx := delegatedCtx()
	rctx.FilterConfig = FieldEqualsUser("author_id")
	res := e.ChildPredicate(rctx, "work_order_id", "n", 0, 42)
	require.False(t, res.DenyAll)
	assert.Equal(t, "n.work_order_id = $1 AND n.author_id = $2", res.Clause)
	assert.Equal(t, []any{int64(42), int64(3)}, res.Args)
}

func TestChildPredicate_DenyWins(t *testing.T) {
	e := NewEngine(denyLookup, nil)
	rctx := delegatedCtx()
	rctx.FilterConfig = DenyAll()
	res := e.ChildPredicate(rctx, "work_order_id", "n", 0, 42)
	assert.True(t, res.DenyAll)

	// Missing identifier on the child's own filter denies too.
	rctx.FilterConfig = FieldEquals("customer_id", KeyCustomerProfileID)
	res = e.ChildPredicate(rctx, "work_order_id", "n", 0, 42)
	assert.True(t, res.DenyAll)
}

func TestChildPredicate_NilContextDenies(t *testing.T) {
	e := NewEngine(denyLookup, nil)
	assert.True(t, e.ChildPredicate(nil, "work_order_id", "n", 0, 42).DenyAll)
}
