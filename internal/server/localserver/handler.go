// Package localserver provides the local management server.
package localserver

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/yndnr/gridmatch-go/internal/core/domain"
	"github.com/yndnr/gridmatch-go/internal/infra/buildinfo"
)

// Stats reports registry counters.
type Stats interface {
	LobbyCount() int
	SessionCount() int
}

// Scanner iterates the lobby registry.
type Scanner interface {
	Scan(fn func(*domain.Lobby) bool)
}

// Sweeper runs one garbage-collection pass.
type Sweeper interface {
	Sweep(ctx context.Context) int
}

// Handler handles local management commands.
type Handler struct {
	stats   Stats
	scanner Scanner
	sweeper Sweeper
	drain   func()
	started time.Time
}

// NewHandler creates a new Handler. Any dependency may be nil; the
// matching command then reports an error instead of acting.
func NewHandler(stats Stats, scanner Scanner, sweeper Sweeper, drain func()) *Handler {
	return &Handler{
		stats:   stats,
		scanner: scanner,
		sweeper: sweeper,
		drain:   drain,
		started: time.Now(),
	}
}

// commandResult is the JSON response for every management command.
type commandResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// statusData is the payload for the status command.
type statusData struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Uptime   string `json:"uptime"`
	Lobbies  int    `json:"lobbies"`
	Sessions int    `json:"sessions"`
}

// lobbyData is one entry in the lobbies command payload.
type lobbyData struct {
	Code    string `json:"code"`
	Phase   string `json:"phase"`
	Players int    `json:"players"`
	Moves   int    `json:"moves"`
}

// Execute executes a local management command and writes one JSON
// response line.
func (h *Handler) Execute(w io.Writer, cmd string, args []string) error {
	switch cmd {
	case "status":
		return h.handleStatus(w)
	case "lobbies":
		return h.handleLobbies(w)
	case "gc":
		return h.handleGC(w)
	case "drain":
		return h.handleDrain(w)
	default:
		return writeResult(w, commandResult{Error: "unknown command: " + cmd})
	}
}

func (h *Handler) handleStatus(w io.Writer) error {
	data := statusData{
		Version: buildinfo.Version,
		Commit:  buildinfo.Commit,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	}
	if h.stats != nil {
		data.Lobbies = h.stats.LobbyCount()
		data.Sessions = h.stats.SessionCount()
	}
	return writeResult(w, commandResult{OK: true, Data: data})
}

func (h *Handler) handleLobbies(w io.Writer) error {
	if h.scanner == nil {
		return writeResult(w, commandResult{Error: "lobby registry unavailable"})
	}

	lobbies := make([]lobbyData, 0)
	h.scanner.Scan(func(l *domain.Lobby) bool {
		l.Lock()
		state := l.Snapshot()
		l.Unlock()

		lobbies = append(lobbies, lobbyData{
			Code:    state.Code,
			Phase:   state.Phase.String(),
			Players: len(state.Players),
			Moves:   state.Moves,
		})
		return true
	})

	return writeResult(w, commandResult{OK: true, Data: lobbies})
}

func (h *Handler) handleGC(w io.Writer) error {
	if h.sweeper == nil {
		return writeResult(w, commandResult{Error: "sweeper unavailable"})
	}

	removed := h.sweeper.Sweep(context.Background())
	return writeResult(w, commandResult{OK: true, Data: map[string]int{"removed": removed}})
}

func (h *Handler) handleDrain(w io.Writer) error {
	if h.drain == nil {
		return writeResult(w, commandResult{Error: "drain unavailable"})
	}

	h.drain()
	return writeResult(w, commandResult{OK: true})
}

func writeResult(w io.Writer, res commandResult) error {
	return json.NewEncoder(w).Encode(res)
}
