// Package handler provides HTTP request handlers for the GridMatch
// control plane.
package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/yndnr/gridmatch-go/internal/core/domain"
	"github.com/yndnr/gridmatch-go/internal/core/service"
	"github.com/yndnr/gridmatch-go/internal/telemetry/logger"
)

// Stats reports registry counters for the status endpoint.
type Stats interface {
	LobbyCount() int
	SessionCount() int
}

// ConnCounter reports the number of live router subscriptions.
type ConnCounter interface {
	ConnCount() int
}

// Handler is the main HTTP handler that routes requests to appropriate handlers.
type Handler struct {
	lobbies  *service.LobbyService
	stats    Stats
	conns    ConnCounter
	log      logger.Logger
	mux      *http.ServeMux
	started  time.Time
	draining atomic.Bool
}

// New creates a new Handler with the given services. stats and conns may
// be nil; the status endpoint then reports zeros for their fields.
func New(lobbies *service.LobbyService, stats Stats, conns ConnCounter, log logger.Logger) *Handler {
	h := &Handler{
		lobbies: lobbies,
		stats:   stats,
		conns:   conns,
		log:     log,
		mux:     http.NewServeMux(),
		started: time.Now(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Drain flips the readiness probe to failing so load balancers stop
// routing new lobbies here. Existing games keep running.
func (h *Handler) Drain() {
	h.draining.Store(true)
}

// registerRoutes registers all HTTP routes.
func (h *Handler) registerRoutes() {
	// Health endpoints
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)

	// Lobby endpoints
	h.mux.HandleFunc("POST /v1/lobbies", h.handleCreateLobby)
	h.mux.HandleFunc("POST /v1/lobbies/{code}/join", h.handleJoinLobby)
	h.mux.HandleFunc("GET /v1/lobbies/{code}", h.handleGetLobby)
	h.mux.HandleFunc("DELETE /v1/lobbies/{code}", h.handleRemoveLobby)

	// Status endpoint
	h.mux.HandleFunc("GET /v1/status", h.handleStatus)
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(r)
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := getRequestID(r)
	response := NewErrorResponse(requestID, code, message, details)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// getRequestID extracts request ID from the header set by middleware.
func getRequestID(r *http.Request) string {
	return r.Header.Get("X-Request-ID")
}

// handleServiceError converts service errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsDomainError(err, "") {
		code := domain.GetErrorCode(err)
		status := errorCodeToHTTPStatus(code)
		h.writeError(w, r, status, code, err.Error(), nil)
		return
	}

	// Generic internal error
	h.log.Error("internal error", "error", err)
	h.writeError(w, r, http.StatusInternalServerError, domain.ErrInternalServer.Code, "internal server error", nil)
}

// errorCodeToHTTPStatus maps error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-4040"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4090"), strings.HasSuffix(code, "-4091"),
		strings.HasSuffix(code, "-4092"), strings.HasSuffix(code, "-4093"):
		return http.StatusConflict
	case strings.HasSuffix(code, "-4290"):
		return http.StatusTooManyRequests
	case strings.HasSuffix(code, "-4000"), strings.HasSuffix(code, "-4001"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "-4010"), strings.HasSuffix(code, "-4011"),
		strings.HasSuffix(code, "-4012"):
		return http.StatusUnauthorized
	case strings.HasSuffix(code, "-4030"), strings.HasSuffix(code, "-4031"):
		return http.StatusForbidden
	case strings.HasPrefix(code, "GM-ARG-"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "GM-SYS-5"), strings.HasSuffix(code, "-5090"):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
