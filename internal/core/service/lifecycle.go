// Package service provides domain services for GridMatch.
//
// Lifecycle runs the background sweep: grace finalization and lobby
// garbage collection.
package service

import (
	"context"
	"time"

	"github.com/yndnr/gridmatch-go/internal/core/domain"
	"github.com/yndnr/gridmatch-go/internal/telemetry/logger"
	"github.com/yndnr/gridmatch-go/internal/telemetry/metric"
)

// LobbyScanner is the storage surface the sweeper needs.
type LobbyScanner interface {
	// Scan visits every lobby until fn returns false.
	Scan(fn func(*domain.Lobby) bool)

	// RemoveLobby deletes a lobby and its session bindings.
	RemoveLobby(ctx context.Context, code string) error
}

// StateNotifier pushes a lobby's state to its attached sessions.
// Implemented by Router.
type StateNotifier interface {
	BroadcastState(lobby *domain.Lobby)
}

// Lifecycle periodically finalizes expired grace periods and removes
// dead lobbies.
type Lifecycle struct {
	store    LobbyScanner
	notifier StateNotifier
	log      logger.Logger
	metrics  *metric.Metrics

	interval  time.Duration
	retention time.Duration
	idle      time.Duration
}

// LifecycleConfig holds configuration for the sweeper.
type LifecycleConfig struct {
	// Interval is the sweep period (default: 10s).
	Interval time.Duration

	// Retention is how long a finished lobby is kept before removal
	// (default: 10m). The window lets players request a rematch.
	Retention time.Duration

	// Idle is how long an empty lobby may wait for players before
	// removal (default: 1h).
	Idle time.Duration
}

// DefaultLifecycleConfig returns default configuration.
func DefaultLifecycleConfig() *LifecycleConfig {
	return &LifecycleConfig{
		Interval:  10 * time.Second,
		Retention: 10 * time.Minute,
		Idle:      time.Hour,
	}
}

// NewLifecycle creates the sweeper.
func NewLifecycle(store LobbyScanner, notifier StateNotifier, log logger.Logger, metrics *metric.Metrics, config *LifecycleConfig) *Lifecycle {
	if config == nil {
		config = DefaultLifecycleConfig()
	}
	interval := config.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	retention := config.Retention
	if retention <= 0 {
		retention = 10 * time.Minute
	}
	idle := config.Idle
	if idle <= 0 {
		idle = time.Hour
	}
	if log == nil {
		log = logger.Default()
	}

	return &Lifecycle{
		store:     store,
		notifier:  notifier,
		log:       log,
		metrics:   metrics,
		interval:  interval,
		retention: retention,
		idle:      idle,
	}
}

// Run sweeps until the context is canceled.
func (lc *Lifecycle) Run(ctx context.Context) {
	ticker := time.NewTicker(lc.interval)
	defer ticker.Stop()

	lc.log.Info("lifecycle sweeper started",
		"interval", lc.interval.String(),
		"retention", lc.retention.String(),
	)

	for {
		select {
		case <-ctx.Done():
			lc.log.Info("lifecycle sweeper stopped")
			return
		case <-ticker.C:
			lc.Sweep(ctx)
		}
	}
}

// Sweep runs one pass: expired grace periods end their games as
// abandoned, and dead lobbies are removed. Returns the number of
// lobbies removed.
func (lc *Lifecycle) Sweep(ctx context.Context) int {
	now := time.Now().UnixMilli()

	var abandoned []*domain.Lobby
	var dead []string

	lc.store.Scan(func(l *domain.Lobby) bool {
		l.Lock()
		if l.FinalizeGrace(now) {
			abandoned = append(abandoned, l)
		}
		if lc.removableLocked(l, now) {
			dead = append(dead, l.Code)
		}
		l.Unlock()
		return true
	})

	// Notify outside the scan so broadcasts never run under a lobby lock.
	for _, l := range abandoned {
		lc.metrics.GameFinished(string(domain.ResultAbandoned))
		lc.log.Info("grace period expired, game abandoned", "lobby", l.Code)
		if lc.notifier != nil {
			lc.notifier.BroadcastState(l)
		}
	}

	for _, code := range dead {
		if err := lc.store.RemoveLobby(ctx, code); err != nil {
			lc.log.Warn("lobby removal failed", "lobby", code, "error", err)
			continue
		}
		lc.metrics.LobbyRemoved()
		lc.log.Debug("lobby removed", "lobby", code)
	}

	return len(dead)
}

// removableLocked decides whether a lobby is dead. The caller holds
// the lobby lock.
func (lc *Lifecycle) removableLocked(l *domain.Lobby, now int64) bool {
	switch {
	case l.GraceActive(now):
		return false
	case l.Empty():
		// Nobody attached: finished games go right away, waiting
		// lobbies after the idle window.
		if l.Game.Phase == domain.Finished {
			return true
		}
		return now-l.CreatedAt > lc.idle.Milliseconds()
	case l.FinishedAt > 0:
		// Players still attached to a finished game: keep the lobby
		// for a rematch until retention runs out.
		return now-l.FinishedAt > lc.retention.Milliseconds()
	default:
		return false
	}
}
