// Package handler provides HTTP request handlers for the GridMatch
// control plane.
package handler

import (
	"time"

	"github.com/yndnr/gridmatch-go/internal/core/domain"
)

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses Prometheus format).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"` // Additional error details
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// CreateLobbyRequest is the request body for POST /v1/lobbies.
type CreateLobbyRequest struct {
	PlayerName string `json:"player_name"`
}

// CreateLobbyResponse is the response body for POST /v1/lobbies.
// Token is returned exactly once; the server keeps no copy.
type CreateLobbyResponse struct {
	Code      string            `json:"code"`
	Token     string            `json:"token"`
	SessionID string            `json:"session_id"`
	Mark      domain.Mark       `json:"mark"`
	State     domain.LobbyState `json:"state"`
}

// JoinLobbyRequest is the request body for POST /v1/lobbies/{code}/join.
type JoinLobbyRequest struct {
	PlayerName string `json:"player_name"`
}

// JoinLobbyResponse is the response body for POST /v1/lobbies/{code}/join.
type JoinLobbyResponse struct {
	Code      string            `json:"code"`
	Token     string            `json:"token"`
	SessionID string            `json:"session_id"`
	Mark      domain.Mark       `json:"mark"`
	Started   bool              `json:"started"`
	Rejoined  bool              `json:"rejoined,omitempty"`
	State     domain.LobbyState `json:"state"`
}

// GetLobbyResponse is the response body for GET /v1/lobbies/{code}.
type GetLobbyResponse struct {
	State domain.LobbyState `json:"state"`
}

// RemoveLobbyResponse is the response body for DELETE /v1/lobbies/{code}.
type RemoveLobbyResponse struct {
	Removed bool `json:"removed"`
}

// StatusResponse is the response body for GET /v1/status.
type StatusResponse struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	Uptime      string `json:"uptime"`
	Lobbies     int    `json:"lobbies"`
	Sessions    int    `json:"sessions"`
	Connections int    `json:"connections"`
}
