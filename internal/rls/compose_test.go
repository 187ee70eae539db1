package rls

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_EmptyRLSKeepsBase(t *testing.T) {
	where, args := Compose("status = $1", []any{"open"}, PredicateResult{Applied: true})
	assert.Equal(t, "WHERE status = $1", where)
	assert.Equal(t, []any{"open"}, args)
}

func TestCompose_EmptyEverything(t *testing.T) {
	where, args := Compose("", nil, PredicateResult{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestCompose_RLSOnly(t *testing.T) {
	res := PredicateResult{Clause: "work_orders.customer_id = $1", Args: []any{int64(4)}, Applied: true}
	where, args := Compose("", nil, res)
	assert.Equal(t, "WHERE work_orders.customer_id = $1", where)
	assert.Equal(t, []any{int64(4)}, args)
}

func TestCompose_BaseWithExistingWhereKeyword(t *testing.T) {
	res := PredicateResult{Clause: "t.owner_id = $1", Args: []any{int64(2)}, Applied: true}
	where, args := Compose("WHERE status = $1", []any{"open"}, res)
	assert.Equal(t, "WHERE status = $1 AND t.owner_id = $2", where)
	assert.Equal(t, []any{"open", int64(2)}, args)
}

// The offset composition invariant: for any base of length N, an RLS clause
// numbered from $1 renumbers to $(N+1) and the final argument list is the
// concatenation.
func TestCompose_OffsetInvariant(t *testing.T) {
	res := PredicateResult{Clause: "t.owner_id = $1", Args: []any{int64(9)}, Applied: true}
	for n := 0; n < 6; n++ {
		base := ""
		var args []any
		for i := 0; i < n; i++ {
			if i > 0 {
				base += " AND "
			}
			base += fmt.Sprintf("c%d = $%d", i, i+1)
			args = append(args, i)
		}
		where, out := Compose(base, args, res)
		assert.Contains(t, where, fmt.Sprintf("t.owner_id = $%d", n+1))
		require.Len(t, out, n+1)
		assert.Equal(t, int64(9), out[n])
	}
}

// A disjunctive base must not let rows slip past a denial: AND binds
// tighter than OR, so the base is grouped before the deny clause is ANDed.
func TestCompose_DenyAllSurvivesDisjunctiveBase(t *testing.T) {
	where, args := Compose("status = $1 OR status = $2", []any{"open", "closed"}, denyAllResult())
	assert.Equal(t, "WHERE (status = $1 OR status = $2) AND 1=0", where)
	assert.Len(t, args, 2)
	assert.NotContains(t, where, "OR 1=0")
}

func TestCompose_RestrictionSurvivesDisjunctiveBase(t *testing.T) {
	res := Interpret(FieldEquals("assigned_technician_id", KeyTechnicianProfileID),
		Identifiers{KeyUserID: intp(3), KeyTechnicianProfileID: intp(10)}, "work_orders", 0)
	where, args := Compose("priority = $1 OR priority = $2", []any{"high", "urgent"}, res)
	assert.Equal(t, "WHERE (priority = $1 OR priority = $2) AND work_orders.assigned_technician_id = $3", where)
	assert.Equal(t, []any{"high", "urgent", int64(10)}, args)
}

func TestCompose_ConjunctiveBaseStaysBare(t *testing.T) {
	where, _ := Compose("status = $1 AND priority = $2", []any{"open", "high"}, denyAllResult())
	assert.Equal(t, "WHERE status = $1 AND priority = $2 AND 1=0", where)
}

func TestHasTopLevelOr(t *testing.T) {
	cases := map[string]bool{
		"status = $1 OR status = $2":       true,
		"status = $1 or status = $2":       true,
		"(status = $1 OR status = $2)":     false,
		"status = $1 AND priority = $2":    false,
		"origin = $1":                      false,
		"note = 'open or closed'":          false,
		"(a = $1 OR b = $2) AND c = $3":    false,
		"(a = $1 OR b = $2) OR c = $3":     true,
		"note = 'it''s open' OR flag = $1": true,
		"status = $1 AND (a = $2 OR b=$3)": false,
	}
	for clause, want := range cases {
		assert.Equal(t, want, hasTopLevelOr(clause), clause)
	}
}

func TestCompose_FindByIDStyleOffset(t *testing.T) {
	// A findById caller already holds the primary-key predicate at $1.
	res := Interpret(FieldEquals("assigned_technician_id", KeyTechnicianProfileID),
		Identifiers{KeyUserID: intp(3), KeyTechnicianProfileID: intp(10)}, "work_orders", 0)
	where, args := Compose("work_orders.id = $1", []any{int64(55)}, res)
	assert.Equal(t, "WHERE work_orders.id = $1 AND work_orders.assigned_technician_id = $2", where)
	assert.Equal(t, []any{int64(55), int64(10)}, args)
}

// End-to-end scenario from the technician / work-orders path.
func TestCompose_TechnicianWorkOrdersScenario(t *testing.T) {
	lookup := func(role, resource string) FilterConfig {
		require.Equal(t, "technician", role)
		require.Equal(t, "work_orders", resource)
		return FieldEquals("assigned_technician_id", KeyTechnicianProfileID)
	}
	e := NewEngine(lookup, nil)

	src := staticIdentifiers{KeyTechnicianProfileID: intp(10)}
	rctx, err := e.BuildContext("technician", 3, "work_orders", src)
	require.NoError(t, err)

	res := e.InterpretContext(rctx, "work_orders", 0)
	where, args := Compose("status = $1", []any{"open"}, res)

	assert.Equal(t, "WHERE status = $1 AND work_orders.assigned_technician_id = $2", where)
	assert.Equal(t, []any{"open", int64(10)}, args)
	require.NoError(t, e.AssertApplied(rctx, res))
}

func TestShiftPlaceholders(t *testing.T) {
	assert.Equal(t, "a = $3 AND b = $4", shiftPlaceholders("a = $1 AND b = $2", 2))
	assert.Equal(t, "a = $1", shiftPlaceholders("a = $1", 0))
	assert.Equal(t, "1=0", shiftPlaceholders("1=0", 5))
}

// staticIdentifiers implements IdentifierSource for tests.
type staticIdentifiers map[string]*int64

func (s staticIdentifiers) ProfileIdentifiers() map[string]*int64 { return s }
