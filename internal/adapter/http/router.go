package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ronesego-ui/captop/internal/adapter/http/handler"
	"github.com/ronesego-ui/captop/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	CompanyHandler *handler.CompanyHandler
	PeriodHandler  *handler.PeriodHandler
	HealthHandler  *handler.HealthHandler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/companies", func(r chi.Router) {
			r.Post("/", cfg.CompanyHandler.Create)
			r.Get("/", cfg.CompanyHandler.List)
			r.Get("/{id}", cfg.CompanyHandler.Get)

			r.Route("/{id}/periods", func(r chi.Router) {
				r.Post("/", cfg.PeriodHandler.Advance)
				r.Get("/{period}/statements", cfg.PeriodHandler.GetStatements)
				r.Get("/{period}/ledger", cfg.PeriodHandler.GetLedger)
			})
		})
	})

	return r
}
