// Package domain defines the core domain models for GridMatch.
package domain

import (
	"sync"
	"time"
)

// MaxPlayers is the number of seats in a lobby.
const MaxPlayers = 2

// Player is one seat in a lobby.
type Player struct {
	// UserID identifies the player across rejoins of the same seat.
	UserID string `json:"user_id"`

	// SessionID is the currently attached session, replaced on rejoin.
	SessionID string `json:"session_id"`

	// Name is the display name chosen at join time.
	Name string `json:"name"`

	// Mark is the seat's mark, fixed for the lifetime of the lobby.
	Mark Mark `json:"mark"`

	// Connected reports whether the seat currently has a live session.
	Connected bool `json:"connected"`

	// JoinedAt is the seat creation timestamp (Unix milliseconds).
	JoinedAt int64 `json:"joined_at"`
}

// Lobby is one game room: two seats, an engine, and a short code.
//
// All mutation happens under the lobby's own mutex. The registry hands
// out *Lobby pointers; callers Lock before touching any field.
type Lobby struct {
	mu sync.Mutex

	// Code is the short join code, unique within the registry.
	Code string `json:"code"`

	// CreatedAt is the lobby creation timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`

	// Players holds the seats in join order. The first joiner plays X.
	Players []*Player `json:"players"`

	// Game is the turn state machine for the current match.
	Game *Engine `json:"game"`

	// GraceUntil is the abandonment deadline (Unix milliseconds) while a
	// disconnect grace period runs, zero otherwise.
	GraceUntil int64 `json:"grace_until,omitempty"`

	// FinishedAt records when the game reached a terminal state
	// (Unix milliseconds), used for retention sweeping.
	FinishedAt int64 `json:"finished_at,omitempty"`
}

// NewLobby creates an empty lobby in WaitingForPlayers.
func NewLobby(code string) *Lobby {
	return &Lobby{
		Code:      code,
		CreatedAt: time.Now().UnixMilli(),
		Game:      NewEngine(),
	}
}

// Lock acquires the lobby mutex. Every event against the lobby runs
// under this lock, which is what serializes concurrent dispatches.
func (l *Lobby) Lock() { l.mu.Lock() }

// Unlock releases the lobby mutex.
func (l *Lobby) Unlock() { l.mu.Unlock() }

// Attach seats the session in the lobby. The caller holds the lock and
// has already created the session; Attach assigns its mark.
//
// Three outcomes:
//   - a free seat in WaitingForPlayers is taken (started reports
//     whether this attach was the second one and began the game)
//   - a disconnected seat is reclaimed by name during the grace period
//     (rejoined is true, the seat keeps its mark)
//   - an error: ErrLobbyFull when both seats are live, ErrLobbyStarted
//     otherwise
func (l *Lobby) Attach(sess *Session) (started, rejoined bool, err error) {
	if l.Game.Phase == WaitingForPlayers {
		mark := X
		if len(l.Players) == 1 {
			mark = O
		}
		sess.Mark = mark
		l.Players = append(l.Players, &Player{
			UserID:    sess.UserID,
			SessionID: sess.ID,
			Name:      sess.PlayerName,
			Mark:      mark,
			Connected: true,
			JoinedAt:  time.Now().UnixMilli(),
		})
		if len(l.Players) == MaxPlayers {
			// The first joiner opens.
			if err := l.Game.Start(l.Players[0].Mark); err != nil {
				return false, false, err
			}
			return true, false, nil
		}
		return false, false, nil
	}

	// Rejoin: a disconnected seat may be reclaimed by name while the
	// grace period runs.
	if l.GraceActive(time.Now().UnixMilli()) {
		for _, p := range l.Players {
			if !p.Connected && p.Name == sess.PlayerName {
				p.SessionID = sess.ID
				p.UserID = sess.UserID
				p.Connected = true
				sess.Mark = p.Mark
				l.GraceUntil = 0
				return false, true, nil
			}
		}
	}

	if l.ConnectedCount() == MaxPlayers {
		return false, false, ErrLobbyFull
	}
	return false, false, ErrLobbyStarted
}

// Detach marks the seat behind sessionID as disconnected.
//
// In WaitingForPlayers the seat is freed entirely. In InProgress the
// game either ends immediately as abandoned, or a grace deadline is
// armed when grace > 0. finished reports whether the game just ended.
func (l *Lobby) Detach(sessionID string, grace time.Duration) (player *Player, finished bool, err error) {
	player = l.PlayerBySession(sessionID)
	if player == nil {
		return nil, false, ErrNotAPlayer
	}
	player.Connected = false

	switch l.Game.Phase {
	case WaitingForPlayers:
		for i, p := range l.Players {
			if p == player {
				l.Players = append(l.Players[:i], l.Players[i+1:]...)
				break
			}
		}
		return player, false, nil

	case InProgress:
		if grace > 0 {
			l.GraceUntil = time.Now().Add(grace).UnixMilli()
			return player, false, nil
		}
		l.abandon()
		return player, true, nil

	default: // Finished
		return player, false, nil
	}
}

// FinalizeGrace ends the game as abandoned when the grace deadline has
// passed. Returns true when the game was finished by this call.
func (l *Lobby) FinalizeGrace(now int64) bool {
	if l.Game.Phase != InProgress || l.GraceUntil == 0 || now < l.GraceUntil {
		return false
	}
	l.abandon()
	return true
}

// abandon finishes the game in favor of the remaining connected seat.
func (l *Lobby) abandon() {
	winner := Empty
	for _, p := range l.Players {
		if p.Connected {
			winner = p.Mark
			break
		}
	}
	l.Game.Abandon(winner)
	l.GraceUntil = 0
	l.FinishedAt = time.Now().UnixMilli()
}

// ResetGame starts a rematch on the same board. Both seats must be
// connected; the opening mark alternates between matches.
func (l *Lobby) ResetGame() error {
	if l.ConnectedCount() != MaxPlayers {
		return ErrGameNotStarted.WithDetails("rematch needs both players connected")
	}
	if err := l.Game.Reset(); err != nil {
		return err
	}
	l.FinishedAt = 0
	return nil
}

// GraceActive reports whether a disconnect grace period is running.
func (l *Lobby) GraceActive(now int64) bool {
	return l.GraceUntil > 0 && now < l.GraceUntil
}

// PlayerBySession returns the seat attached to sessionID, or nil.
func (l *Lobby) PlayerBySession(sessionID string) *Player {
	for _, p := range l.Players {
		if p.SessionID == sessionID {
			return p
		}
	}
	return nil
}

// PlayerByMark returns the seat holding mark, or nil.
func (l *Lobby) PlayerByMark(mark Mark) *Player {
	for _, p := range l.Players {
		if p.Mark == mark {
			return p
		}
	}
	return nil
}

// ConnectedCount returns the number of live seats.
func (l *Lobby) ConnectedCount() int {
	n := 0
	for _, p := range l.Players {
		if p.Connected {
			n++
		}
	}
	return n
}

// Empty reports whether no live session remains.
func (l *Lobby) Empty() bool {
	return l.ConnectedCount() == 0
}

// Snapshot builds the broadcastable view of the lobby. The caller
// holds the lock; the returned value shares no mutable state.
func (l *Lobby) Snapshot() LobbyState {
	players := make([]PlayerInfo, 0, len(l.Players))
	for _, p := range l.Players {
		players = append(players, PlayerInfo{
			Name:      p.Name,
			Mark:      p.Mark,
			Connected: p.Connected,
		})
	}
	return LobbyState{
		Code:    l.Code,
		Phase:   l.Game.Phase,
		Players: players,
		Board:   l.Game.Board,
		Turn:    l.Game.Turn,
		Result:  l.Game.Result,
		Moves:   len(l.Game.History),
	}
}
