package rls

import "fmt"

// DelegateToParent intercepts a ParentDelegated config for a sub-entity
// whose access is controlled by its parent. parentID must identify a parent
// row the caller has already been authorized to read under the parent
// resource's own context; the returned predicate pins the child rows to that
// parent key.
//
// The function refuses (denies) when the child context is missing, its
// config is any other variant, or the key field is empty: delegation is an
// explicit contract, not a call-order convention.
func DelegateToParent(childCtx *Context, childKeyField, fieldPrefix string, paramOffset int, parentID int64) PredicateResult {
	if childCtx == nil || childKeyField == "" {
		return denyAllResult()
	}
	if childCtx.FilterConfig.Kind != KindParentDelegated {
		return denyAllResult()
	}
	return PredicateResult{
		Clause:  fmt.Sprintf("%s = $%d", qualify(fieldPrefix, childKeyField), paramOffset+1),
		Args:    []any{parentID},
		Applied: true,
	}
}

// ChildPredicate builds the full predicate for reading a sub-entity under
// an authorized parent row. ParentDelegated configs resolve through
// DelegateToParent; every other config pins to the parent key and ANDs the
// generically interpreted filter on top, so a role with its own restriction
// on the child resource keeps it even inside the parent scope.
func (e *Engine) ChildPredicate(rctx *Context, childKeyField, fieldPrefix string, paramOffset int, parentID int64) PredicateResult {
	if rctx == nil || childKeyField == "" {
		return denyAllResult()
	}
	if rctx.FilterConfig.Kind == KindParentDelegated {
		return DelegateToParent(rctx, childKeyField, fieldPrefix, paramOffset, parentID)
	}

	pin := fmt.Sprintf("%s = $%d", qualify(fieldPrefix, childKeyField), paramOffset+1)
	res := e.InterpretContext(rctx, fieldPrefix, paramOffset+1)
	if res.DenyAll {
		return res
	}

	out := PredicateResult{
		Clause:  pin,
		Args:    []any{parentID},
		Applied: true,
	}
	if res.Clause != "" {
		out.Clause += " AND " + res.Clause
		out.Args = append(out.Args, res.Args...)
	}
	return out
}
