// Package httpserver provides the HTTP/HTTPS control plane for GridMatch.
//
// This package implements the REST API using stdlib net/http:
//
//   - Lobby endpoints: /v1/lobbies, /v1/lobbies/{code}, /v1/lobbies/{code}/join
//   - Status endpoint: /v1/status
//   - Health endpoints: /health, /ready, /metrics
//
// Features:
//
//   - TLS support
//   - Middleware chain: Recover, CORS, RequestID, RateLimit, Audit
//   - Graceful shutdown with configurable timeout
//   - Prometheus metrics integration
//
// Real-time game events do not travel over HTTP; they flow through the
// event router on each session's duplex channel.
package httpserver
