package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/tenders-service/internal/metrics"
	"github.com/pribylovaa/tenders-service/internal/transport/http/handlers"
	"github.com/pribylovaa/tenders-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// BaseCtx — контекст процесса для фоновых пересборок через POST /tenders/refresh.
	BaseCtx context.Context
	// Metrics — HTTP-метрики; nil отключает их сбор.
	Metrics *metrics.Metrics
	// MetricsHandler отдаёт /metrics; nil — маршрут не регистрируется.
	MetricsHandler http.Handler
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.TendersService, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(),          // до логирования: id попадает в логгер запроса
		middleware.Logging(opts.Logger), // request-scoped логгер в контексте
		middleware.Metrics(opts.Metrics),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout, "/metrics"))
	}

	h := handlers.New(opts.BaseCtx, svc)
	registerRoutes(root, h)

	if opts.MetricsHandler != nil {
		root.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	return root
}

// registerRoutes — единая точка регистрации REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// tenders
	r.Get("/tenders", h.ListTenders)
	r.Post("/tenders/refresh", h.TriggerRefresh)
	r.Get("/tenders/{id}", h.GetTender)
	r.Get("/tenders/{id}/source", h.GetSourceTender)

	// service
	r.Get("/status", h.Status)
	r.Get("/livez", h.Livez)
	r.Get("/healthz", h.Healthz)
}
