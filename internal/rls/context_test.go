package rls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func denyLookup(string, string) FilterConfig { return DenyAll() }

func TestBuildContext_MissingResourceIsConfigError(t *testing.T) {
	e := NewEngine(denyLookup, nil)
	_, err := e.BuildContext("technician", 3, "", nil)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestBuildContext_MissingRoleIsAuthzError(t *testing.T) {
	obs := &recordingObserver{}
	e := NewEngine(denyLookup, obs)
	_, err := e.BuildContext("", 3, "work_orders", nil)
	require.Error(t, err)
	var authzErr *AuthzError
	require.ErrorAs(t, err, &authzErr)
	assert.Equal(t, "work_orders", authzErr.Resource)
	assert.Len(t, obs.denied, 1)
}

func TestBuildContext_IdentifiersAlwaysCarryFullKeySet(t *testing.T) {
	e := NewEngine(denyLookup, nil)

	rctx, err := e.BuildContext("technician", 3, "work_orders",
		staticIdentifiers{KeyTechnicianProfileID: intp(10)})
	require.NoError(t, err)

	uid, ok := rctx.Identifiers.Value(KeyUserID)
	require.True(t, ok)
	assert.Equal(t, int64(3), uid)

	tid, ok := rctx.Identifiers.Value(KeyTechnicianProfileID)
	require.True(t, ok)
	assert.Equal(t, int64(10), tid)

	// customerProfileId is present but null, not omitted.
	v, present := rctx.Identifiers[KeyCustomerProfileID]
	assert.True(t, present)
	assert.Nil(t, v)
	_, ok = rctx.Identifiers.Value(KeyCustomerProfileID)
	assert.False(t, ok)
}

func TestBuildContext_NilIdentifierSource(t *testing.T) {
	e := NewEngine(denyLookup, nil)
	rctx, err := e.BuildContext("customer", 8, "invoices", nil)
	require.NoError(t, err)

	uid, ok := rctx.Identifiers.Value(KeyUserID)
	require.True(t, ok)
	assert.Equal(t, int64(8), uid)
	for _, k := range ProfileKeys {
		_, present := rctx.Identifiers[k]
		assert.True(t, present, "profile key %s must be present", k)
	}
}

func TestBuildContext_EmitsDebugAuditRecord(t *testing.T) {
	obs := &recordingObserver{}
	lookup := func(role, resource string) FilterConfig {
		return FieldEquals("customer_id", KeyCustomerProfileID)
	}
	e := NewEngine(lookup, obs)

	_, err := e.BuildContext("customer", 4, "invoices", staticIdentifiers{KeyCustomerProfileID: intp(12)})
	require.NoError(t, err)
	require.Len(t, obs.built, 1)
	assert.Equal(t, "invoices/customer/field_equals(customer_id=customerProfileId)", obs.built[0])
}

func TestBuildContext_LookupResolvesConfig(t *testing.T) {
	e := NewEngine(func(role, resource string) FilterConfig {
		if role == "admin" {
			return AllRecords()
		}
		return DenyAll()
	}, nil)

	admin, err := e.BuildContext("admin", 1, "work_orders", nil)
	require.NoError(t, err)
	assert.Equal(t, KindAllRecords, admin.FilterConfig.Kind)

	other, err := e.BuildContext("intern", 2, "work_orders", nil)
	require.NoError(t, err)
	assert.Equal(t, KindDenyAll, other.FilterConfig.Kind)
}
