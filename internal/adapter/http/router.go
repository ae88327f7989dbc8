package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/paulossjunior/exemplokiro-sub001/internal/adapter/http/handler"
	"github.com/paulossjunior/exemplokiro-sub001/internal/adapter/http/middleware"
	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
	"github.com/paulossjunior/exemplokiro-sub001/internal/infrastructure/auth"
	"github.com/paulossjunior/exemplokiro-sub001/internal/infrastructure/metrics"
	"github.com/paulossjunior/exemplokiro-sub001/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	BankAccountHandler *handler.BankAccountHandler
	AccountingHandler  *handler.AccountingAccountHandler
	BalanceHandler     *handler.BalanceHandler
	IntegrityHandler   *handler.IntegrityHandler
	AuditHandler       *handler.AuditHandler
	AuthHandler        *handler.AuthHandler
	HealthHandler      *handler.HealthHandler

	JWTManager       *auth.JWTManager
	AuthEnabled      bool
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger
	RateLimit        float64
	RateBurst        int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimit > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, cfg.Metrics).Limit)
	}

	// Health endpoints
	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.Liveness)
		r.Get("/ready", cfg.HealthHandler.Readiness)
	}

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Auth middleware selection. With auth disabled every request acts
	// as a fixed coordinator, so record attribution still works.
	authenticate := middleware.StaticUser(&domain.User{
		ID:    "system",
		Email: "system@localhost",
		Role:  domain.RoleCoordinator,
	})
	if cfg.AuthEnabled {
		authenticate = middleware.AuthMiddleware(cfg.JWTManager)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", cfg.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/auth/me", cfg.AuthHandler.GetCurrentUser)

			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
				r.Use(idempotencyMiddleware.Wrap)
			}

			// User management
			r.With(middleware.RequireTransactionWriter).Post("/users", cfg.AuthHandler.Register)

			// Bank accounts
			r.Route("/bank-accounts", func(r chi.Router) {
				r.With(middleware.RequireTransactionWriter).Post("/", cfg.BankAccountHandler.Create)
				r.Get("/", cfg.BankAccountHandler.List)
				r.Get("/{id}", cfg.BankAccountHandler.Get)
				r.Get("/{id}/balance", cfg.BalanceHandler.GetBalance)
				r.Get("/{id}/running-balances", cfg.BalanceHandler.GetRunningBalances)
				r.Get("/{id}/transactions", cfg.TransactionHandler.ListByBankAccount)
			})

			// Accounting accounts
			r.Route("/accounting-accounts", func(r chi.Router) {
				r.With(middleware.RequireTransactionWriter).Post("/", cfg.AccountingHandler.Create)
				r.Get("/", cfg.AccountingHandler.List)
				r.Get("/{id}", cfg.AccountingHandler.Get)
			})

			// Transactions
			r.Route("/transactions", func(r chi.Router) {
				r.With(middleware.RequireTransactionWriter).Post("/", cfg.TransactionHandler.Create)
				r.Get("/{id}", cfg.TransactionHandler.Get)
			})

			// Integrity checks
			r.Route("/integrity", func(r chi.Router) {
				r.Use(middleware.RequireIntegrityChecker)
				r.Post("/report", cfg.IntegrityHandler.GenerateReport)
				r.Get("/transactions/{id}/verify", cfg.IntegrityHandler.VerifyTransaction)
			})

			// Audit trail
			r.Route("/audit-entries", func(r chi.Router) {
				r.Use(middleware.RequireIntegrityChecker)
				r.Get("/", cfg.AuditHandler.List)
				r.Get("/{entityType}/{entityID}", cfg.AuditHandler.GetEntityTrail)
			})
		})
	})

	return r
}
