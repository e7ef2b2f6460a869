// Package domain defines the core domain models for GridMatch.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling. This package contains:
//
//   - Lobby: Game room with two seats and a per-lobby lock
//   - Engine: Turn state machine with move history
//   - Session: Player seat credential entity
//   - TokenClaims: Identity carried by signed tokens
//   - Events: Tagged client/server event variants
//   - Errors: Domain-specific error definitions
package domain
