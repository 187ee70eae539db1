// Package rls implements the row-level security engine: a declarative
// filter-policy interpreter that turns a (role, resource) policy value into a
// parameterized SQL predicate, composes it with independently built query
// clauses, and verifies after the fact that the predicate was honored.
//
// Every ambiguous, missing, or malformed input interprets as a denial; the
// only way to grant unrestricted access is an explicit AllRecords config.
package rls

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Identifier keys a FieldEquals config may reference.
const (
	KeyUserID              = "userId"
	KeyCustomerProfileID   = "customerProfileId"
	KeyTechnicianProfileID = "technicianProfileId"
)

// ProfileKeys lists the profile-scoped identifier keys. BuildContext always
// populates every key, with a nil value when the caller has no such profile,
// so "present but null" stays distinguishable from "never defined".
var ProfileKeys = []string{KeyCustomerProfileID, KeyTechnicianProfileID}

// Kind discriminates the filter configuration variants.
type Kind int

const (
	// KindInvalid is the zero value. It is not a valid configuration and
	// interprets as a denial.
	KindInvalid Kind = iota
	KindAllRecords
	KindDenyAll
	KindParentDelegated
	KindFieldEquals
)

// FilterConfig is the policy value for one (role, resource) pair.
// Exactly one variant is active; FieldEquals carries the column to filter on
// and the identifier key supplying the comparison value.
type FilterConfig struct {
	Kind     Kind
	Field    string // KindFieldEquals only
	ValueKey string // KindFieldEquals only; empty means KeyUserID
}

// AllRecords places no restriction on the resource.
func AllRecords() FilterConfig { return FilterConfig{Kind: KindAllRecords} }

// DenyAll restricts the resource to zero rows.
func DenyAll() FilterConfig { return FilterConfig{Kind: KindDenyAll} }

// ParentDelegated marks a sub-entity whose access is controlled by a parent
// join. It must be intercepted before the generic interpreter; reaching the
// interpreter with this variant is a misconfiguration and denies.
func ParentDelegated() FilterConfig { return FilterConfig{Kind: KindParentDelegated} }

// FieldEquals restricts to rows where field equals the caller's identifier
// named by valueKey.
func FieldEquals(field, valueKey string) FilterConfig {
	return FilterConfig{Kind: KindFieldEquals, Field: field, ValueKey: valueKey}
}

// FieldEqualsUser is the shorthand form: restrict to rows where field equals
// the caller's user id.
func FieldEqualsUser(field string) FilterConfig {
	return FieldEquals(field, KeyUserID)
}

// String returns a description of the config for audit records. It names the
// column and identifier key but never carries identifier values.
func (c FilterConfig) String() string {
	switch c.Kind {
	case KindAllRecords:
		return "all_records"
	case KindDenyAll:
		return "deny_all"
	case KindParentDelegated:
		return "parent_delegated"
	case KindFieldEquals:
		key := c.ValueKey
		if key == "" {
			key = KeyUserID
		}
		return fmt.Sprintf("field_equals(%s=%s)", c.Field, key)
	default:
		return "invalid"
	}
}

// UnmarshalYAML decodes the policy-file forms of a filter config:
//
//	all                          -> AllRecords
//	deny                         -> DenyAll
//	parent                       -> ParentDelegated
//	<column>                     -> FieldEquals(column, userId)
//	{field: <column>, value: <k>} -> FieldEquals(column, k)
func (c *FilterConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		switch s {
		case "":
			return fmt.Errorf("line %d: empty filter config", node.Line)
		case "all":
			*c = AllRecords()
		case "deny":
			*c = DenyAll()
		case "parent":
			*c = ParentDelegated()
		default:
			*c = FieldEqualsUser(s)
		}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Field string `yaml:"field"`
			Value string `yaml:"value"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		if raw.Field == "" {
			return fmt.Errorf("line %d: filter config mapping requires a field", node.Line)
		}
		if raw.Value == "" {
			raw.Value = KeyUserID
		}
		*c = FieldEquals(raw.Field, raw.Value)
		return nil
	default:
		return fmt.Errorf("line %d: filter config must be a string or mapping", node.Line)
	}
}

// Identifiers maps identifier keys to values resolved from the caller's
// principal record. A nil value means the key is defined but the caller has
// no such identifier; lookups of nil or absent keys must deny.
type Identifiers map[string]*int64

// Value returns the identifier for key. ok is false when the key is absent
// or its value is nil.
func (ids Identifiers) Value(key string) (int64, bool) {
	v, present := ids[key]
	if !present || v == nil {
		return 0, false
	}
	return *v, true
}
