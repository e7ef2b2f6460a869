// Package localserver provides the Unix socket server for local management.
//
// This package implements a local-only management interface via Unix domain
// socket. It bypasses the public control plane for operator commands:
//
//   - status: server version, uptime, lobby and session counts
//   - lobbies: list live lobbies with phase and move count
//   - gc: trigger one lifecycle sweep
//   - drain: stop the readiness probe so the load balancer rotates out
//
// Security:
//
//   - Only accessible via Unix domain socket
//   - File system permissions control access
//   - No token required (physical/local access only)
package localserver
