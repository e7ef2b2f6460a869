// Package handler provides HTTP request handlers for the GridMatch
// control plane.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yndnr/gridmatch-go/internal/core/domain"
	"github.com/yndnr/gridmatch-go/internal/core/service"
)

// handleCreateLobby handles POST /v1/lobbies.
func (h *Handler) handleCreateLobby(w http.ResponseWriter, r *http.Request) {
	var req CreateLobbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrBadRequest.Code, "invalid request body", nil)
		return
	}

	resp, err := h.lobbies.Create(r.Context(), &service.CreateLobbyRequest{
		PlayerName: req.PlayerName,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.log.Info("lobby created",
		"code", resp.Code,
		"session_id", resp.SessionID,
	)

	h.writeJSON(w, r, http.StatusCreated, CreateLobbyResponse{
		Code:      resp.Code,
		Token:     resp.Token,
		SessionID: resp.SessionID,
		Mark:      resp.Mark,
		State:     resp.State,
	})
}

// handleJoinLobby handles POST /v1/lobbies/{code}/join.
func (h *Handler) handleJoinLobby(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	var req JoinLobbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrBadRequest.Code, "invalid request body", nil)
		return
	}

	resp, err := h.lobbies.Join(r.Context(), &service.JoinLobbyRequest{
		Code:       code,
		PlayerName: req.PlayerName,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.log.Info("player joined lobby",
		"code", resp.Code,
		"session_id", resp.SessionID,
		"mark", resp.Mark.String(),
		"started", resp.Started,
	)

	h.writeJSON(w, r, http.StatusOK, JoinLobbyResponse{
		Code:      resp.Code,
		Token:     resp.Token,
		SessionID: resp.SessionID,
		Mark:      resp.Mark,
		Started:   resp.Started,
		Rejoined:  resp.Rejoined,
		State:     resp.State,
	})
}

// handleGetLobby handles GET /v1/lobbies/{code}.
func (h *Handler) handleGetLobby(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	resp, err := h.lobbies.Get(r.Context(), &service.GetLobbyRequest{Code: code})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, GetLobbyResponse{State: resp.State})
}

// handleRemoveLobby handles DELETE /v1/lobbies/{code}.
func (h *Handler) handleRemoveLobby(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	resp, err := h.lobbies.Remove(r.Context(), &service.RemoveLobbyRequest{Code: code})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.log.Info("lobby removed", "code", code)

	h.writeJSON(w, r, http.StatusOK, RemoveLobbyResponse{Removed: resp.Removed})
}
