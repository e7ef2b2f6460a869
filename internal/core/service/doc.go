// Package service provides domain services for GridMatch.
//
// Domain services contain pure business logic and orchestrate operations
// on domain models. They define interfaces for storage dependencies,
// allowing for dependency injection and testability.
//
// This package contains:
//
//   - LobbyService: Lobby registry operations (create, join, get, remove, leave)
//   - TokenService: Session token signing and validation
//   - Router: Per-lobby event serialization and server event fan-out
//   - Lifecycle: Grace finalization and lobby garbage collection
//
// Services are stateless and thread-safe, designed for high-concurrency
// scenarios with per-session rate limiting support.
package service
