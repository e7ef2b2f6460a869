// Package main provides the entry point for gridmatch-server.
//
// The server is the core GridMatch service that provides:
//
//   - HTTP/HTTPS API for lobby management and match state
//   - Per-lobby event routing with state broadcast to both players
//   - Background sweeping of finished and abandoned lobbies
//   - Local Unix socket for management access
//
// Usage:
//
//	gridmatch-server [flags]
//	gridmatch-server --config /path/to/config.yaml
//
// The server loads configuration, initializes infrastructure components,
// and starts all configured listeners.
package main
