package rls

// AppliedReporter is the result-shape contract: any query result that
// participated in an RLS-filtered read must report whether the filter was
// applied. Marker provides the canonical implementation for embedding.
type AppliedReporter interface {
	RLSApplied() bool
}

// Marker is embedded in query result values to carry the applied flag.
type Marker struct {
	Applied bool
}

func (m Marker) RLSApplied() bool { return m.Applied }

// AssertApplied is the post-query safety net. It fails when a context
// exists, its config is not AllRecords, and the result is missing or does
// not report applied=true — meaning a handler fetched data without honoring
// the context. It passes silently when no context exists (the route opted
// out of RLS) or when the config is AllRecords (nothing to verify).
//
// On failure a critical security event is emitted before the
// *EnforcementViolation is returned; a triggered assertion is the last line
// of defense after rows may already have been served.
func (e *Engine) AssertApplied(rctx *Context, res AppliedReporter) error {
	if rctx == nil {
		return nil
	}
	if rctx.FilterConfig.Kind == KindAllRecords {
		return nil
	}
	if res != nil && res.RLSApplied() {
		return nil
	}
	desc := rctx.FilterConfig.String()
	e.obs.EnforcementViolation(rctx.Resource, rctx.Role, desc)
	return &EnforcementViolation{
		Resource: rctx.Resource,
		Role:     rctx.Role,
		Config:   desc,
	}
}
