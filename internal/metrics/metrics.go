// Package metrics registers the Prometheus instrumentation: HTTP request
// counters and the security counters fed by the RLS observer chain.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Security metrics
	ContextsBuiltTotal         *prometheus.CounterVec
	AccessDeniedTotal          *prometheus.CounterVec
	PolicyMisconfiguredTotal   *prometheus.CounterVec
	EnforcementViolationsTotal *prometheus.CounterVec
	PolicyReloadsTotal         *prometheus.CounterVec
}

// New creates a registry with process/Go collectors and all FieldOps metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fieldops_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ContextsBuiltTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_rls_contexts_built_total",
				Help: "Row security contexts built, by resource and role",
			},
			[]string{"resource", "role"},
		),
		AccessDeniedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_rls_access_denied_total",
				Help: "Requests denied by the row security layer",
			},
			[]string{"resource", "role"},
		),
		PolicyMisconfiguredTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_rls_policy_misconfigured_total",
				Help: "Lookups that hit a malformed or non-interpretable filter config",
			},
			[]string{"resource", "role"},
		),
		EnforcementViolationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_rls_enforcement_violations_total",
				Help: "Results that reached the service layer without the row filter applied",
			},
			[]string{"resource", "role"},
		),
		PolicyReloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_policy_reloads_total",
				Help: "Policy file reloads, by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ContextsBuiltTotal,
		m.AccessDeniedTotal,
		m.PolicyMisconfiguredTotal,
		m.EnforcementViolationsTotal,
		m.PolicyReloadsTotal,
	)
	return m
}

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// PolicyReload records a policy reload outcome ("ok" or "error").
func (m *Metrics) PolicyReload(outcome string) {
	m.PolicyReloadsTotal.WithLabelValues(outcome).Inc()
}

// HTTPMiddleware records request counts and latency. The route pattern, not
// the raw URL, is used as the path label to keep cardinality bounded; pass a
// patternFn that resolves it (chi's RouteContext provides one).
func (m *Metrics) HTTPMiddleware(patternFn func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			path := patternFn(r)
			if path == "" {
				path = "unmatched"
			}
			m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(sw.status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
