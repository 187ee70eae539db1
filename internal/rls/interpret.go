package rls

import "fmt"

// PredicateResult is the interpreter's output: a parameterized SQL fragment
// plus its bound arguments. Applied is false only when no RLS context exists
// at all; an explicit denial still counts as the policy having been applied.
type PredicateResult struct {
	Clause  string
	Args    []any
	DenyAll bool
	Applied bool
}

// RLSApplied reports whether row-level security was applied to the query
// that produced this result. PredicateResult satisfies AppliedReporter so
// it can be checked by the enforcement auditor directly in tests.
func (r PredicateResult) RLSApplied() bool { return r.Applied }

func denyAllResult() PredicateResult {
	return PredicateResult{Clause: "1=0", DenyAll: true, Applied: true}
}

// Interpret evaluates a filter configuration against the caller's
// identifiers and returns the predicate to apply. Placeholders are numbered
// starting at paramOffset+1 and columns are qualified with fieldPrefix.
//
// The function is total: every input yields a result, and every branch other
// than an explicit AllRecords either restricts or denies. There is no
// fallthrough to "allow".
func Interpret(cfg FilterConfig, ids Identifiers, fieldPrefix string, paramOffset int) PredicateResult {
	switch cfg.Kind {
	case KindAllRecords:
		return PredicateResult{Applied: true}
	case KindDenyAll:
		return denyAllResult()
	case KindParentDelegated:
		// Must be intercepted by the sub-entity path before reaching the
		// generic interpreter. Fail closed.
		return denyAllResult()
	case KindFieldEquals:
		if cfg.Field == "" {
			return denyAllResult()
		}
		key := cfg.ValueKey
		if key == "" {
			key = KeyUserID
		}
		v, ok := ids.Value(key)
		if !ok {
			// A caller with no matching identifier is never unrestricted.
			return denyAllResult()
		}
		return PredicateResult{
			Clause:  fmt.Sprintf("%s = $%d", qualify(fieldPrefix, cfg.Field), paramOffset+1),
			Args:    []any{v},
			Applied: true,
		}
	default:
		return denyAllResult()
	}
}

func qualify(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}

// InterpretContext interprets the context's filter config and reports
// denial diagnostics through the engine's observer. A nil context means the
// route carries no RLS at all and yields an empty, not-applied result.
func (e *Engine) InterpretContext(rctx *Context, fieldPrefix string, paramOffset int) PredicateResult {
	if rctx == nil {
		return PredicateResult{}
	}
	res := Interpret(rctx.FilterConfig, rctx.Identifiers, fieldPrefix, paramOffset)
	if !res.DenyAll {
		return res
	}
	switch rctx.FilterConfig.Kind {
	case KindDenyAll:
		// Explicit policy decision, nothing to report.
	case KindParentDelegated:
		e.obs.PolicyMisconfigured(rctx.Resource, rctx.Role,
			"parent_delegated config reached the generic interpreter; denying")
	case KindFieldEquals:
		if rctx.FilterConfig.Field == "" {
			e.obs.PolicyMisconfigured(rctx.Resource, rctx.Role,
				"field_equals config names no field; denying")
			break
		}
		e.obs.AccessDenied(rctx.Resource, rctx.Role,
			fmt.Sprintf("identifier %q missing or null; denying", rctx.FilterConfig.ValueKey))
	default:
		e.obs.PolicyMisconfigured(rctx.Resource, rctx.Role,
			fmt.Sprintf("malformed filter config %s; denying", rctx.FilterConfig))
	}
	return res
}
