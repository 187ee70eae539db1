// Package app provides application-level wiring: it assembles the policy
// store, the row security engine, repositories, services, and the HTTP
// router from the configuration that main() provides.
package app

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"fieldops/internal/api"
	"fieldops/internal/config"
	"fieldops/internal/db/repository"
	"fieldops/internal/metrics"
	"fieldops/internal/middleware"
	"fieldops/internal/policy"
	"fieldops/internal/rls"
	"fieldops/internal/service"
)

// Deps holds the external dependencies that main() must provide: the
// database handle, config, and logger.
type Deps struct {
	Cfg    *config.Config
	DB     *sql.DB
	Logger *slog.Logger
}

// Services groups the service pointers the handler and scheduler need.
type Services struct {
	WorkOrders  *service.WorkOrderService
	Customers   *service.CustomerService
	Technicians *service.TechnicianService
	Invoices    *service.InvoiceService
	Contracts   *service.ContractService
	Audit       *service.AuditService
}

// App is the fully wired application.
type App struct {
	Services Services
	Engine   *rls.Engine
	Policies *policy.Store
	Metrics  *metrics.Metrics
	Router   http.Handler
}

// New wires the application from the provided deps. When cfg.PolicyFile is
// set the policy table is loaded from it; otherwise the built-in defaults
// apply. Hot reloading is the caller's concern (see WatchPolicies).
func New(deps Deps) (*App, error) {
	cfg := deps.Cfg
	log := deps.Logger

	// === Policy table ===
	policies := policy.NewStore()
	if cfg.PolicyFile != "" {
		if err := policies.LoadFile(cfg.PolicyFile); err != nil {
			return nil, err
		}
		log.Info("policy table loaded", "path", cfg.PolicyFile)
	} else {
		policies.Replace(policy.Default())
		log.Info("policy table loaded", "source", "defaults")
	}

	// === Engine with metrics -> log observer chain ===
	m := metrics.New()
	obs := metrics.NewRLSObserver(m, rls.NewLogObserver(log.With("component", "rls")))
	engine := rls.NewEngine(policies.Lookup, obs)

	// === Repositories ===
	workOrderRepo := repository.NewWorkOrderRepo(deps.DB, engine)
	customerRepo := repository.NewCustomerRepo(deps.DB, engine)
	technicianRepo := repository.NewTechnicianRepo(deps.DB, engine)
	invoiceRepo := repository.NewInvoiceRepo(deps.DB, engine)
	contractRepo := repository.NewContractRepo(deps.DB, engine)
	principalRepo := repository.NewPrincipalRepo(deps.DB)
	auditRepo := repository.NewAuditRepo(deps.DB)

	// === Services ===
	services := Services{
		WorkOrders:  service.NewWorkOrderService(workOrderRepo, engine, auditRepo),
		Customers:   service.NewCustomerService(customerRepo, engine, auditRepo),
		Technicians: service.NewTechnicianService(technicianRepo, engine, auditRepo),
		Invoices:    service.NewInvoiceService(invoiceRepo, engine, auditRepo),
		Contracts:   service.NewContractService(contractRepo, engine, auditRepo),
		Audit:       service.NewAuditService(auditRepo, engine, log.With("component", "audit")),
	}

	// === HTTP ===
	auth, err := middleware.NewAuthenticator(cfg.JWTSecret, principalRepo, log.With("component", "auth"))
	if err != nil {
		return nil, err
	}
	handler := api.NewHandler(
		services.WorkOrders,
		services.Customers,
		services.Technicians,
		services.Invoices,
		services.Contracts,
		services.Audit,
	)
	router := api.NewRouter(handler, api.RouterConfig{
		Auth:           auth,
		Metrics:        m,
		MetricsHandler: m.Handler(),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimit: middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		},
	})

	return &App{
		Services: services,
		Engine:   engine,
		Policies: policies,
		Metrics:  m,
		Router:   router,
	}, nil
}

// WatchPolicies hot-reloads the policy file until ctx is cancelled. Reload
// outcomes are counted; a bad file keeps the previous table in effect.
func (a *App) WatchPolicies(ctx context.Context, path string, log *slog.Logger) error {
	return a.Policies.Watch(ctx, path, log, func(err error) {
		if err != nil {
			a.Metrics.PolicyReload("error")
			return
		}
		a.Metrics.PolicyReload("ok")
	})
}
