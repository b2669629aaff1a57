package router

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iudanet/docsync/internal/server/handlers"
	"github.com/iudanet/docsync/internal/server/metrics"
	"github.com/iudanet/docsync/internal/server/middleware"
	"github.com/iudanet/docsync/internal/server/relay"
)

const (
	SyncPath    = "/api/v1/sync"
	HealthPath  = "/api/v1/health"
	MetricsPath = "/metrics"
)

// Config зависимости роутера
type Config struct {
	Relay   *relay.Relay
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// Limiter ограничивает sync запросы; nil отключает ограничение
	Limiter *middleware.RateLimiter
	Token   string
	Version string
}

// New создает роутер: sync за токеном и rate limiter, health и metrics открыты
func New(cfg Config) http.Handler {
	r := mux.NewRouter()
	r.Use(
		middleware.RecoveryMiddleware(cfg.Logger),
		middleware.LoggingWithSkip(cfg.Logger, cfg.Metrics, []string{HealthPath, MetricsPath}),
	)

	syncHandler := handlers.NewSyncHandler(cfg.Logger, cfg.Relay)
	healthHandler := handlers.NewHealthHandler(cfg.Logger, cfg.Relay, cfg.Version)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	syncRoute := v1.Path("/sync").Subrouter()
	syncRoute.Use(middleware.TokenAuthMiddleware(cfg.Logger, cfg.Token))
	if cfg.Limiter != nil {
		syncRoute.Use(middleware.RateLimitMiddleware(cfg.Limiter, cfg.Metrics))
	}
	syncRoute.Methods(http.MethodPost).HandlerFunc(syncHandler.HandleSync)

	r.Handle(MetricsPath, cfg.Metrics.Handler()).Methods(http.MethodGet)

	return r
}
