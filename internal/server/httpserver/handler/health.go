// Package handler provides HTTP request handlers for the GridMatch
// control plane.
package handler

import (
	"net/http"
	"time"

	"github.com/yndnr/gridmatch-go/internal/infra/buildinfo"
)

// handleHealth handles GET /health.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReady handles GET /ready.
func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.draining.Load() {
		h.writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{
			"status": "draining",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleStatus handles GET /v1/status.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Version: buildinfo.Version,
		Commit:  buildinfo.Commit,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	}
	if h.stats != nil {
		resp.Lobbies = h.stats.LobbyCount()
		resp.Sessions = h.stats.SessionCount()
	}
	if h.conns != nil {
		resp.Connections = h.conns.ConnCount()
	}

	h.writeJSON(w, r, http.StatusOK, resp)
}
