// Package handler provides HTTP request handlers for the GridMatch
// control plane.
//
// This package contains handlers for all HTTP endpoints:
//
//   - lobby.go: Lobby create/join/get/remove operations
//   - health.go: Health and readiness checks
//
// All handlers follow a consistent pattern:
//
//   - Parse and validate request
//   - Call domain service
//   - Format and return response
//   - Handle errors with appropriate HTTP status codes
//
// Real-time game traffic does not pass through here; it flows through
// the event router over each session's duplex channel.
package handler
