// Package memory provides in-memory storage for GridMatch.
//
// It implements the lobby registry using concurrent-safe data
// structures with sharded locking for high performance.
package memory

import (
	"context"
	"sync"

	"github.com/yndnr/gridmatch-go/internal/core/domain"
	"github.com/yndnr/gridmatch-go/pkg/cmap"
)

// Store provides the in-memory lobby registry with a session index.
//
// Lobbies are handed out as live pointers: each lobby carries its own
// mutex and every event against it runs under that lock, so there is
// no clone-on-read. The store's own lock only guards cross-index
// atomicity (code insert + session bind, removal + unbind).
type Store struct {
	// Primary index: lobby code -> Lobby
	lobbies *cmap.Map[*domain.Lobby]

	// Secondary index: SessionID -> lobby code
	sessions *cmap.Map[string]

	// Global lock for operations spanning both indexes
	mu sync.Mutex
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		lobbies:  cmap.New[*domain.Lobby](),
		sessions: cmap.New[string](),
	}
}

// CreateLobby registers a lobby under its code.
// Returns ErrCodeConflict when the code is already taken; the registry
// retries allocation with a fresh code in that case.
func (s *Store) CreateLobby(_ context.Context, lobby *domain.Lobby) error {
	if !s.lobbies.SetIfAbsent(lobby.Code, lobby) {
		return domain.ErrCodeConflict.WithDetails(lobby.Code)
	}
	return nil
}

// GetLobby retrieves a lobby by code.
func (s *Store) GetLobby(_ context.Context, code string) (*domain.Lobby, error) {
	lobby, ok := s.lobbies.Get(code)
	if !ok {
		return nil, domain.ErrLobbyNotFound.WithDetails(code)
	}
	return lobby, nil
}

// RemoveLobby evicts a lobby and every session bound to it.
// Removal is idempotent: evicting an absent code is a no-op.
func (s *Store) RemoveLobby(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lobby, ok := s.lobbies.Pop(code)
	if !ok {
		return nil
	}

	lobby.Lock()
	for _, p := range lobby.Players {
		s.sessions.Delete(p.SessionID)
	}
	lobby.Unlock()

	return nil
}

// BindSession points a session ID at a lobby code.
func (s *Store) BindSession(_ context.Context, sessionID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lobbies.Has(code) {
		return domain.ErrLobbyNotFound.WithDetails(code)
	}
	s.sessions.Set(sessionID, code)
	return nil
}

// UnbindSession drops a session ID from the index. Idempotent.
func (s *Store) UnbindSession(_ context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}

// LobbyBySession resolves a session ID to its lobby.
// A validated token whose lobby is gone yields ErrUnknownLobby.
func (s *Store) LobbyBySession(_ context.Context, sessionID string) (*domain.Lobby, error) {
	code, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrUnknownLobby
	}

	lobby, ok := s.lobbies.Get(code)
	if !ok {
		// Index inconsistency - clean up the orphaned binding
		s.sessions.Delete(sessionID)
		return nil, domain.ErrUnknownLobby
	}
	return lobby, nil
}

// LobbyCount returns the number of registered lobbies.
func (s *Store) LobbyCount() int {
	return s.lobbies.Count()
}

// SessionCount returns the number of bound sessions.
func (s *Store) SessionCount() int {
	return s.sessions.Count()
}

// Codes returns all registered lobby codes.
func (s *Store) Codes() []string {
	return s.lobbies.Keys()
}

// Scan iterates over all lobbies.
// Return false from the callback to stop iteration. The callback gets
// the live pointer and must take the lobby lock before reading state.
func (s *Store) Scan(fn func(*domain.Lobby) bool) {
	s.lobbies.Range(func(_ string, lobby *domain.Lobby) bool {
		return fn(lobby)
	})
}
