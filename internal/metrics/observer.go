package metrics

import "fieldops/internal/rls"

// RLSObserver counts engine security events and forwards them to the next
// observer in the chain, usually the slog one.
type RLSObserver struct {
	m    *Metrics
	next rls.Observer
}

func NewRLSObserver(m *Metrics, next rls.Observer) *RLSObserver {
	if next == nil {
		next = rls.NopObserver{}
	}
	return &RLSObserver{m: m, next: next}
}

func (o *RLSObserver) ContextBuilt(resource, role, config string) {
	o.m.ContextsBuiltTotal.WithLabelValues(resource, role).Inc()
	o.next.ContextBuilt(resource, role, config)
}

func (o *RLSObserver) PolicyMisconfigured(resource, role, detail string) {
	o.m.PolicyMisconfiguredTotal.WithLabelValues(resource, role).Inc()
	o.next.PolicyMisconfigured(resource, role, detail)
}

func (o *RLSObserver) AccessDenied(resource, role, detail string) {
	o.m.AccessDeniedTotal.WithLabelValues(resource, role).Inc()
	o.next.AccessDenied(resource, role, detail)
}

func (o *RLSObserver) EnforcementViolation(resource, role, config string) {
	o.m.EnforcementViolationsTotal.WithLabelValues(resource, role).Inc()
	o.next.EnforcementViolation(resource, role, config)
}
