package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/http/handler"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/http/middleware"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/infrastructure/auth"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/infrastructure/metrics"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	SplitHandler   *handler.SplitHandler
	PaymentHandler *handler.PaymentHandler
	FeeHandler     *handler.FeeHandler
	BalanceHandler *handler.BalanceHandler
	HealthHandler  *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	Logger           *zerolog.Logger
	JWTManager       *auth.JWTManager
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(*cfg.Logger).Wrap)
	}
	r.Use(middleware.Recovery)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Splits and their payments
		r.Route("/splits", func(r chi.Router) {
			r.Post("/", cfg.SplitHandler.Create)
			r.Get("/{id}", cfg.SplitHandler.Get)
			r.Post("/{id}/cancel", cfg.SplitHandler.Cancel)
			r.Get("/{id}/payments", cfg.SplitHandler.ListPayments)
			r.Post("/{id}/payments", cfg.PaymentHandler.Record)
		})

		// Per-user views
		r.Route("/users", func(r chi.Router) {
			r.Get("/{id}/splits", cfg.SplitHandler.ListByUser)
			r.Get("/{id}/balance", cfg.BalanceHandler.Get)
		})

		// Fee quotes
		r.Get("/fees/quote", cfg.FeeHandler.Quote)
	})

	return r
}
