package rls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restrictedCtx() *Context {
	return &Context{
		Resource:     "work_orders",
		Role:         "technician",
		FilterConfig: FieldEquals("assigned_technician_id", KeyTechnicianProfileID),
		Identifiers:  Identifiers{KeyUserID: intp(3), KeyTechnicianProfileID: intp(10)},
	}
}

func TestAssertApplied_NilContextPasses(t *testing.T) {
	e := NewEngine(denyLookup, nil)
	assert.NoError(t, e.AssertApplied(nil, nil))
}

func TestAssertApplied_AllRecordsPasses(t *testing.T) {
	obs := &recordingObserver{}
	e := NewEngine(denyLookup, obs)
	rctx := &Context{Resource: "customers", Role: "admin", FilterConfig: AllRecords()}
	assert.NoError(t, e.AssertApplied(rctx, nil))
	assert.Empty(t, obs.violations)
}

func TestAssertApplied_MissingResultFails(t *testing.T) {
	obs := &recordingObserver{}
	e := NewEngine(denyLookup, obs)

	err := e.AssertApplied(restrictedCtx(), nil)
	require.Error(t, err)
	var violation *EnforcementViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "work_orders", violation.Resource)
	assert.Equal(t, "technician", violation.Role)
	assert.Equal(t, "field_equals(assigned_technician_id=technicianProfileId)", violation.Config)

	// The critical event fires before the violation is returned.
	require.Len(t, obs.violations, 1)
	assert.Equal(t, "work_orders/technician/field_equals(assigned_technician_id=technicianProfileId)", obs.violations[0])
}

func TestAssertApplied_UnappliedResultFails(t *testing.T) {
	e := NewEngine(denyLookup, &recordingObserver{})
	err := e.AssertApplied(restrictedCtx(), Marker{Applied: false})
	require.Error(t, err)
}

func TestAssertApplied_AppliedResultPasses(t *testing.T) {
	e := NewEngine(denyLookup, &recordingObserver{})
	assert.NoError(t, e.AssertApplied(restrictedCtx(), Marker{Applied: true}))
}

func TestAssertApplied_DenyConfigStillRequiresMarker(t *testing.T) {
	// "I decided to deny" is a form of applying the policy; a result that
	// skipped the engine entirely is still a violation.
	e := NewEngine(denyLookup, &recordingObserver{})
	rctx := &Context{Resource: "invoices", Role: "technician", FilterConfig: DenyAll()}
	require.Error(t, e.AssertApplied(rctx, nil))
	assert.NoError(t, e.AssertApplied(rctx, Marker{Applied: true}))
}
