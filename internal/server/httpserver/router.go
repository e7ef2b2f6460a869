// Package httpserver provides the HTTP/HTTPS control plane for GridMatch.
package httpserver

import (
	"net/http"

	"github.com/yndnr/gridmatch-go/internal/core/service"
	"github.com/yndnr/gridmatch-go/internal/server/httpserver/handler"
	"github.com/yndnr/gridmatch-go/internal/telemetry/logger"
	"github.com/yndnr/gridmatch-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Lobbies handles lobby control-plane operations.
	Lobbies *service.LobbyService

	// Stats reports registry counters for the status endpoint. Optional.
	Stats handler.Stats

	// Conns reports live router subscriptions. Optional.
	Conns handler.ConnCounter

	// Logger for request logging.
	Logger logger.Logger

	// Metrics collects request metrics and serves /metrics. Optional.
	Metrics *metric.Metrics

	// CORSAllowedOrigins is the list of allowed CORS origins (empty = allow all).
	CORSAllowedOrigins []string

	// RateLimit is the per-IP request rate (requests/second, 0 = unlimited).
	RateLimit float64

	// RateBurst is the per-IP burst size.
	RateBurst int

	// EnableAudit enables audit logging for all requests.
	EnableAudit bool
}

// NewRouter creates and configures the HTTP router with all routes and
// middleware. The inner handler is returned as well so callers can reach
// operations the router does not expose, such as Drain.
func NewRouter(cfg *RouterConfig) (http.Handler, *handler.Handler) {
	h := handler.New(cfg.Lobbies, cfg.Stats, cfg.Conns, cfg.Logger)

	// Middleware order: Recover -> CORS -> RequestID -> RateLimit -> Audit -> Handler
	middlewares := []Middleware{
		Recover(cfg.Logger),
		CORS(cfg.CORSAllowedOrigins),
		RequestID(),
	}
	if cfg.RateLimit > 0 {
		middlewares = append(middlewares, RateLimit(cfg.RateLimit, cfg.RateBurst))
	}
	if cfg.EnableAudit {
		middlewares = append(middlewares, Audit(cfg.Logger, cfg.Metrics))
	}
	mainHandler := Chain(h, middlewares...)

	mux := http.NewServeMux()

	// Health endpoints stay off the rate limiter so orchestrator probes
	// cannot starve themselves out.
	probeHandler := Chain(h, Recover(cfg.Logger), RequestID())
	mux.Handle("GET /health", probeHandler)
	mux.Handle("GET /ready", probeHandler)

	// Prometheus exposition; bypasses the JSON envelope entirely.
	mux.Handle("GET /metrics", Chain(cfg.Metrics.Handler(), Recover(cfg.Logger), RequestID()))

	// Lobby control plane
	mux.Handle("POST /v1/lobbies", mainHandler)
	mux.Handle("POST /v1/lobbies/{code}/join", mainHandler)
	mux.Handle("GET /v1/lobbies/{code}", mainHandler)
	mux.Handle("DELETE /v1/lobbies/{code}", mainHandler)

	// Status
	mux.Handle("GET /v1/status", mainHandler)

	return mux, h
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		RateLimit:   20,
		RateBurst:   40,
		EnableAudit: true,
	}
}
