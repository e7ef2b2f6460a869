// Package domain defines the core domain models for GridMatch.
package domain

import (
	"fmt"
	"time"
)

// Mark is a cell value on the board. Empty means the cell is free.
type Mark uint8

// Mark values.
const (
	Empty Mark = iota
	X
	O
)

// String returns the display form of the mark.
func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// MarshalJSON encodes the mark as "X", "O" or "".
func (m Mark) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON decodes "X", "O" or "" into a mark.
func (m *Mark) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"X"`, `"x"`:
		*m = X
	case `"O"`, `"o"`:
		*m = O
	case `""`, `null`:
		*m = Empty
	default:
		return ErrInvalidArgument.WithDetails("mark must be X, O or empty")
	}
	return nil
}

// Other returns the opposing mark. Empty has no opponent.
func (m Mark) Other() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// Board is a 3x3 grid in row-major order:
//
//	0 1 2
//	3 4 5
//	6 7 8
type Board [9]Mark

// Full returns true when no cell is free.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// winLines enumerates the eight winning triples: three rows,
// three columns, two diagonals.
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Winner returns the mark holding a complete line, or Empty.
func (b Board) Winner() Mark {
	for _, line := range winLines {
		a, c := b[line[0]], b[line[1]]
		if a != Empty && a == c && c == b[line[2]] {
			return a
		}
	}
	return Empty
}

// Phase is the game lifecycle state.
type Phase uint8

// Phase values.
const (
	WaitingForPlayers Phase = iota
	InProgress
	Finished
)

// String returns the wire form of the phase.
func (p Phase) String() string {
	switch p {
	case WaitingForPlayers:
		return "waiting_for_players"
	case InProgress:
		return "in_progress"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the phase as its wire string.
func (p Phase) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON decodes a wire string into a phase.
func (p *Phase) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"waiting_for_players"`:
		*p = WaitingForPlayers
	case `"in_progress"`:
		*p = InProgress
	case `"finished"`:
		*p = Finished
	default:
		return ErrInvalidArgument.WithDetails("unknown phase")
	}
	return nil
}

// ResultKind classifies how a game ended.
type ResultKind string

// ResultKind values.
const (
	ResultNone      ResultKind = ""
	ResultWin       ResultKind = "win"
	ResultDraw      ResultKind = "draw"
	ResultAbandoned ResultKind = "abandoned"
)

// Result is the outcome of a finished game.
// Winner is set for ResultWin and for ResultAbandoned when a player remained.
type Result struct {
	Kind   ResultKind `json:"kind"`
	Winner Mark       `json:"winner,omitempty"`
}

// Move is one accepted placement, recorded in play order.
type Move struct {
	Mark     Mark  `json:"mark"`
	Pos      int   `json:"pos"`
	PlayedAt int64 `json:"played_at"` // Unix milliseconds
}

// Engine is the turn state machine for one game.
//
// The engine is not safe for concurrent use; callers hold the owning
// lobby's lock across every call.
type Engine struct {
	Board   Board  `json:"board"`
	Turn    Mark   `json:"turn"`
	Phase   Phase  `json:"phase"`
	Result  Result `json:"result"`
	Opening Mark   `json:"opening"` // mark that opened the current game
	History []Move `json:"history,omitempty"`
}

// NewEngine creates an engine waiting for players.
func NewEngine() *Engine {
	return &Engine{Phase: WaitingForPlayers}
}

// Start transitions WaitingForPlayers to InProgress with the given
// opening mark. Starting twice is an error.
func (e *Engine) Start(opening Mark) error {
	if e.Phase != WaitingForPlayers {
		return ErrLobbyStarted
	}
	if opening != X && opening != O {
		return ErrInvalidArgument.WithDetails("opening mark must be X or O")
	}
	e.Phase = InProgress
	e.Turn = opening
	e.Opening = opening
	return nil
}

// ApplyMove validates and applies one placement by mark at pos.
//
// Validation and mutation happen under the caller's lobby lock, so a
// rejected move leaves the engine untouched.
func (e *Engine) ApplyMove(mark Mark, pos int) error {
	// 1. Game must be running
	switch e.Phase {
	case WaitingForPlayers:
		return ErrGameNotStarted
	case Finished:
		return ErrGameFinished
	}

	// 2. Strict turn order, before anything about the move itself
	if mark != e.Turn {
		return ErrNotYourTurn
	}

	// 3. Position must be on the board
	if pos < 0 || pos > 8 {
		return ErrInvalidPosition.WithDetails("position must be 0..8")
	}

	// 4. Cell must be free
	if e.Board[pos] != Empty {
		return ErrCellOccupied
	}

	// 5. Apply
	e.Board[pos] = mark
	e.History = append(e.History, Move{Mark: mark, Pos: pos, PlayedAt: time.Now().UnixMilli()})

	// 6. Terminal checks
	if winner := e.Board.Winner(); winner != Empty {
		e.Phase = Finished
		e.Result = Result{Kind: ResultWin, Winner: winner}
		return nil
	}
	if e.Board.Full() {
		e.Phase = Finished
		e.Result = Result{Kind: ResultDraw}
		return nil
	}

	// 7. Flip the turn
	e.Turn = mark.Other()
	return nil
}

// Abandon finishes the game because a player left. winner is the mark
// of the remaining player, or Empty when nobody stayed.
//
// Abandoning an already finished game is a no-op so a grace-period
// expiry racing a final move never rewrites the result.
func (e *Engine) Abandon(winner Mark) {
	if e.Phase == Finished {
		return
	}
	e.Phase = Finished
	e.Result = Result{Kind: ResultAbandoned, Winner: winner}
}

// Reset starts a rematch: clears the board and history, swaps the
// opening mark, and returns to InProgress. Only a finished game with
// both players still seated may be reset; the lobby enforces seating.
func (e *Engine) Reset() error {
	if e.Phase != Finished {
		return ErrGameFinished.WithDetails("only a finished game can be reset")
	}
	opening := e.Opening.Other()
	if opening == Empty {
		opening = X
	}
	e.Board = Board{}
	e.History = nil
	e.Result = Result{}
	e.Phase = InProgress
	e.Turn = opening
	e.Opening = opening
	return nil
}

// Clone creates a deep copy of the engine.
func (e *Engine) Clone() *Engine {
	clone := *e
	if e.History != nil {
		clone.History = make([]Move, len(e.History))
		copy(clone.History, e.History)
	}
	return &clone
}

// Replay rebuilds a game by applying recorded moves to a fresh engine.
// The result is deterministic: the same history always yields the same
// board, turn, phase and result.
func Replay(opening Mark, moves []Move) (*Engine, error) {
	e := NewEngine()
	if err := e.Start(opening); err != nil {
		return nil, err
	}
	for i, m := range moves {
		if err := e.ApplyMove(m.Mark, m.Pos); err != nil {
			return nil, ErrInvalidArgument.
				WithDetails(fmt.Sprintf("replay diverged at move %d", i)).
				WithCause(err)
		}
	}
	return e, nil
}
