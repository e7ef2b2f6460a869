package domain

import (
	"errors"
	"testing"
	"time"
)

func newTestSession(t *testing.T, code, name string) *Session {
	t.Helper()
	sess, err := NewSession(code, name)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return sess
}

func TestLobby_AttachAssignsMarks(t *testing.T) {
	l := NewLobby("AB23XY")

	alice := newTestSession(t, l.Code, "Alice")
	started, rejoined, err := l.Attach(alice)
	if err != nil {
		t.Fatalf("Attach(Alice) error = %v", err)
	}
	if started || rejoined {
		t.Errorf("first attach: started = %v, rejoined = %v, want false/false", started, rejoined)
	}
	if alice.Mark != X {
		t.Errorf("Alice mark = %v, want X", alice.Mark)
	}
	if l.Game.Phase != WaitingForPlayers {
		t.Errorf("Phase = %v, want WaitingForPlayers", l.Game.Phase)
	}

	bob := newTestSession(t, l.Code, "Bob")
	started, _, err = l.Attach(bob)
	if err != nil {
		t.Fatalf("Attach(Bob) error = %v", err)
	}
	if !started {
		t.Error("second attach should start the game")
	}
	if bob.Mark != O {
		t.Errorf("Bob mark = %v, want O", bob.Mark)
	}
	if l.Game.Phase != InProgress {
		t.Errorf("Phase = %v, want InProgress", l.Game.Phase)
	}
	// First joiner opens
	if l.Game.Turn != X {
		t.Errorf("Turn = %v, want X", l.Game.Turn)
	}
}

func TestLobby_AttachFull(t *testing.T) {
	l := NewLobby("AB23XY")
	l.Attach(newTestSession(t, l.Code, "Alice"))
	l.Attach(newTestSession(t, l.Code, "Bob"))

	_, _, err := l.Attach(newTestSession(t, l.Code, "Carol"))
	if !errors.Is(err, ErrLobbyFull) {
		t.Errorf("third attach error = %v, want ErrLobbyFull", err)
	}
}

func TestLobby_DetachWaitingFreesSeat(t *testing.T) {
	l := NewLobby("AB23XY")
	alice := newTestSession(t, l.Code, "Alice")
	l.Attach(alice)

	_, finished, err := l.Detach(alice.ID, 0)
	if err != nil {
		t.Fatalf("Detach error = %v", err)
	}
	if finished {
		t.Error("detach in waiting should not finish a game")
	}
	if len(l.Players) != 0 {
		t.Errorf("players = %d, want 0", len(l.Players))
	}
	if !l.Empty() {
		t.Error("lobby should be empty")
	}
}

func TestLobby_DetachInProgressNoGrace(t *testing.T) {
	l := NewLobby("AB23XY")
	alice := newTestSession(t, l.Code, "Alice")
	bob := newTestSession(t, l.Code, "Bob")
	l.Attach(alice)
	l.Attach(bob)

	_, finished, err := l.Detach(alice.ID, 0)
	if err != nil {
		t.Fatalf("Detach error = %v", err)
	}
	if !finished {
		t.Error("detach without grace should finish the game")
	}
	if l.Game.Result.Kind != ResultAbandoned {
		t.Errorf("Result.Kind = %v, want abandoned", l.Game.Result.Kind)
	}
	if l.Game.Result.Winner != O {
		t.Errorf("Result.Winner = %v, want O (remaining player)", l.Game.Result.Winner)
	}
}

func TestLobby_DetachUnknownSession(t *testing.T) {
	l := NewLobby("AB23XY")
	_, _, err := l.Detach("gmss-nope", 0)
	if !errors.Is(err, ErrNotAPlayer) {
		t.Errorf("Detach error = %v, want ErrNotAPlayer", err)
	}
}

func TestLobby_GracePeriodRejoin(t *testing.T) {
	l := NewLobby("AB23XY")
	alice := newTestSession(t, l.Code, "Alice")
	bob := newTestSession(t, l.Code, "Bob")
	l.Attach(alice)
	l.Attach(bob)

	_, finished, err := l.Detach(alice.ID, 30*time.Second)
	if err != nil {
		t.Fatalf("Detach error = %v", err)
	}
	if finished {
		t.Error("detach with grace should not finish immediately")
	}
	if !l.GraceActive(time.Now().UnixMilli()) {
		t.Error("grace period should be active")
	}
	if l.Game.Phase != InProgress {
		t.Errorf("Phase = %v, want InProgress during grace", l.Game.Phase)
	}

	// A different name cannot take the seat
	carol := newTestSession(t, l.Code, "Carol")
	if _, _, err := l.Attach(carol); err == nil {
		t.Error("attach by a different name during grace should fail")
	}

	// Alice rejoins under a fresh session and keeps her mark
	alice2 := newTestSession(t, l.Code, "Alice")
	started, rejoined, err := l.Attach(alice2)
	if err != nil {
		t.Fatalf("rejoin error = %v", err)
	}
	if started || !rejoined {
		t.Errorf("rejoin: started = %v, rejoined = %v, want false/true", started, rejoined)
	}
	if alice2.Mark != X {
		t.Errorf("rejoined mark = %v, want X", alice2.Mark)
	}
	if l.GraceActive(time.Now().UnixMilli()) {
		t.Error("grace period should be cleared after rejoin")
	}

	seat := l.PlayerBySession(alice2.ID)
	if seat == nil || !seat.Connected {
		t.Fatal("rejoined seat should be connected under the new session")
	}
	if l.PlayerBySession(alice.ID) != nil {
		t.Error("old session should no longer resolve to a seat")
	}
}

func TestLobby_FinalizeGrace(t *testing.T) {
	l := NewLobby("AB23XY")
	alice := newTestSession(t, l.Code, "Alice")
	bob := newTestSession(t, l.Code, "Bob")
	l.Attach(alice)
	l.Attach(bob)

	l.Detach(alice.ID, 30*time.Second)

	now := time.Now().UnixMilli()
	if l.FinalizeGrace(now) {
		t.Error("FinalizeGrace before the deadline should be a no-op")
	}

	if !l.FinalizeGrace(l.GraceUntil) {
		t.Error("FinalizeGrace at the deadline should finish the game")
	}
	if l.Game.Result.Kind != ResultAbandoned || l.Game.Result.Winner != O {
		t.Errorf("Result = %+v, want abandoned with winner O", l.Game.Result)
	}
	if l.FinishedAt == 0 {
		t.Error("FinishedAt should be set")
	}
}

func TestLobby_ResetGame(t *testing.T) {
	l := NewLobby("AB23XY")
	alice := newTestSession(t, l.Code, "Alice")
	bob := newTestSession(t, l.Code, "Bob")
	l.Attach(alice)
	l.Attach(bob)

	// X wins the top row
	for _, m := range []struct {
		mark Mark
		pos  int
	}{{X, 0}, {O, 3}, {X, 1}, {O, 4}, {X, 2}} {
		if err := l.Game.ApplyMove(m.mark, m.pos); err != nil {
			t.Fatalf("ApplyMove: %v", err)
		}
	}

	if err := l.ResetGame(); err != nil {
		t.Fatalf("ResetGame error = %v", err)
	}
	if l.Game.Phase != InProgress {
		t.Errorf("Phase = %v, want InProgress", l.Game.Phase)
	}

	// Rematch needs both seats connected
	l.Game.Abandon(O)
	l.Detach(bob.ID, 0)
	if err := l.ResetGame(); err == nil {
		t.Error("ResetGame with a missing player should fail")
	}
}

func TestLobby_Snapshot(t *testing.T) {
	l := NewLobby("AB23XY")
	alice := newTestSession(t, l.Code, "Alice")
	bob := newTestSession(t, l.Code, "Bob")
	l.Attach(alice)
	l.Attach(bob)

	if err := l.Game.ApplyMove(X, 4); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}

	snap := l.Snapshot()
	if snap.Code != "AB23XY" {
		t.Errorf("Code = %q", snap.Code)
	}
	if len(snap.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(snap.Players))
	}
	if snap.Players[0].Name != "Alice" || snap.Players[0].Mark != X {
		t.Errorf("Players[0] = %+v, want Alice/X", snap.Players[0])
	}
	if snap.Board[4] != X {
		t.Errorf("Board[4] = %v, want X", snap.Board[4])
	}
	if snap.Turn != O {
		t.Errorf("Turn = %v, want O", snap.Turn)
	}
	if snap.Moves != 1 {
		t.Errorf("Moves = %d, want 1", snap.Moves)
	}
}

// Full scenario: Alice creates "AB23XY", Bob joins, X wins the middle
// column via 4, 1, 7 while O plays 0 and 8.
func TestLobby_FullScenario(t *testing.T) {
	l := NewLobby("AB23XY")
	alice := newTestSession(t, l.Code, "Alice")
	bob := newTestSession(t, l.Code, "Bob")

	if _, _, err := l.Attach(alice); err != nil {
		t.Fatalf("Alice join: %v", err)
	}
	started, _, err := l.Attach(bob)
	if err != nil || !started {
		t.Fatalf("Bob join: started = %v, err = %v", started, err)
	}

	for _, m := range []struct {
		mark Mark
		pos  int
	}{{X, 4}, {O, 0}, {X, 1}, {O, 8}, {X, 7}} {
		if err := l.Game.ApplyMove(m.mark, m.pos); err != nil {
			t.Fatalf("ApplyMove(%v, %d): %v", m.mark, m.pos, err)
		}
	}

	if l.Game.Phase != Finished {
		t.Fatalf("Phase = %v, want Finished", l.Game.Phase)
	}
	if l.Game.Result.Kind != ResultWin || l.Game.Result.Winner != X {
		t.Errorf("Result = %+v, want win by X", l.Game.Result)
	}
}
