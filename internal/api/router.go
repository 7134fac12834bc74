package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/proofbox/webhook-relay/internal/config"
	"github.com/proofbox/webhook-relay/internal/metrics"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(cfg *config.Config, notifier Notifier, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(metrics.Middleware)

	webhookHandler := NewWebhookHandler(cfg, notifier, logger)
	statusHandler := NewStatusHandler(cfg, notifier, logger)

	r.Post("/webhook", webhookHandler.Handle)
	r.Get("/", statusHandler.Index)
	r.Get("/test", statusHandler.Test)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
