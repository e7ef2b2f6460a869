// Package service provides domain services for GridMatch.
//
// Router dispatches client events into lobbies and fans server events
// back out to attached sessions.
package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/gridmatch-go/internal/core/domain"
	"github.com/yndnr/gridmatch-go/internal/telemetry/logger"
	"github.com/yndnr/gridmatch-go/internal/telemetry/metric"
	"github.com/yndnr/gridmatch-go/pkg/cmap"
)

// Router validates tokens, serializes events per lobby and delivers
// server events to attached sessions.
//
// Serialization comes from the lobby mutex: every dispatch against a
// lobby runs under its lock, so two racing moves for the same turn
// resolve to exactly one winner. Event delivery happens after the lock
// is released; a slow consumer can never stall the game.
type Router struct {
	repo    LobbyRepository
	tokens  *TokenService
	lobbies *LobbyService
	log     logger.Logger
	metrics *metric.Metrics

	conns    *cmap.Map[*conn]
	limiters *sessionLimiters

	bufferSize int
}

// RouterConfig holds configuration for the Router.
type RouterConfig struct {
	// BufferSize is the per-session event buffer. A session whose
	// buffer overflows is dropped (default: 32).
	BufferSize int

	// EventRate is the sustained events-per-second budget per session
	// (default: 10).
	EventRate float64

	// EventBurst is the burst allowance per session (default: 20).
	EventBurst int
}

// DefaultRouterConfig returns default configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		BufferSize: 32,
		EventRate:  10,
		EventBurst: 20,
	}
}

// NewRouter creates a new Router.
func NewRouter(repo LobbyRepository, tokens *TokenService, lobbies *LobbyService, log logger.Logger, metrics *metric.Metrics, config *RouterConfig) *Router {
	if config == nil {
		config = DefaultRouterConfig()
	}
	bufferSize := config.BufferSize
	if bufferSize <= 0 {
		bufferSize = 32
	}
	eventRate := config.EventRate
	if eventRate <= 0 {
		eventRate = 10
	}
	eventBurst := config.EventBurst
	if eventBurst <= 0 {
		eventBurst = 20
	}
	if log == nil {
		log = logger.Default()
	}

	return &Router{
		repo:       repo,
		tokens:     tokens,
		lobbies:    lobbies,
		log:        log,
		metrics:    metrics,
		conns:      cmap.New[*conn](),
		limiters:   newSessionLimiters(rate.Limit(eventRate), eventBurst),
		bufferSize: bufferSize,
	}
}

// Subscription is an attached session's receive side.
type Subscription struct {
	SessionID string
	Events    <-chan domain.ServerEvent

	router *Router
}

// Close detaches the subscription without leaving the lobby. The seat
// is marked disconnected so the grace period machinery can run.
func (s *Subscription) Close() {
	s.router.Detach(context.Background(), s.SessionID)
}

// Attach validates the token, registers the session's event sink and
// broadcasts the current lobby state to everyone in the lobby.
func (r *Router) Attach(ctx context.Context, token string) (*Subscription, error) {
	// 1. Authenticate
	claims, lobby, err := r.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	// 2. Register the sink, replacing any previous one for the session
	c := newConn(claims.SessionID, r.bufferSize)
	if old, ok := r.conns.Get(claims.SessionID); ok {
		old.close()
	}
	r.conns.Set(claims.SessionID, c)

	// 3. Mark the seat live again after a transport drop
	lobby.Lock()
	p := lobby.PlayerBySession(claims.SessionID)
	if p != nil && !p.Connected {
		p.Connected = true
		lobby.GraceUntil = 0
	}
	state := lobby.Snapshot()
	recipients := r.recipientsLocked(lobby)
	lobby.Unlock()

	r.log.Debug("session attached",
		"session_id", claims.SessionID,
		"lobby", claims.LobbyCode,
	)

	// 4. Tell the opponent who arrived, then refresh everyone's state
	if p != nil {
		for _, id := range recipients {
			if id != claims.SessionID {
				r.sendTo(id, domain.NewPlayerJoinedEvent(p.Name, p.Mark))
			}
		}
	}
	r.deliver(recipients, domain.NewStateEvent(state))

	return &Subscription{
		SessionID: claims.SessionID,
		Events:    c.ch,
		router:    r,
	}, nil
}

// Detach unregisters a session's event sink. The seat stays in the
// lobby; leaving is an explicit client event.
func (r *Router) Detach(ctx context.Context, sessionID string) {
	if c, ok := r.conns.Pop(sessionID); ok {
		c.close()
	}
	r.limiters.Forget(sessionID)

	// Mark the seat disconnected so abandonment can kick in.
	lobby, err := r.repo.LobbyBySession(ctx, sessionID)
	if err != nil {
		return
	}

	lobby.Lock()
	var state domain.LobbyState
	finished := false
	p := lobby.PlayerBySession(sessionID)
	if p != nil && p.Connected {
		p.Connected = false
		if lobby.Game.Phase == domain.InProgress {
			if grace := r.lobbies.Grace(); grace > 0 {
				lobby.GraceUntil = time.Now().Add(grace).UnixMilli()
			} else {
				finished = lobby.FinalizeGrace(time.Now().UnixMilli())
			}
		}
	}
	state = lobby.Snapshot()
	recipients := r.recipientsLocked(lobby)
	lobby.Unlock()

	if p == nil {
		return
	}

	r.log.Debug("session detached",
		"session_id", sessionID,
		"lobby", lobby.Code,
	)

	if finished {
		r.metrics.GameFinished(string(domain.ResultAbandoned))
	}
	r.deliver(recipients, domain.NewStateEvent(state))
}

// Dispatch routes one client event into the session's lobby.
//
// The returned error is also emitted as an error event on the
// originator's subscription, never to the opponent.
func (r *Router) Dispatch(ctx context.Context, token string, ev domain.ClientEvent) error {
	start := time.Now()
	err := r.dispatch(ctx, token, ev)
	r.metrics.ObserveDispatch(time.Since(start))

	if err != nil {
		r.metrics.DispatchRejected(domain.GetErrorCode(err))

		// Errors go to the originator only. Token failures carry no
		// trustworthy session identity, so nothing is emitted for them.
		if claims, terr := r.tokens.Validate(token); terr == nil {
			r.sendTo(claims.SessionID, domain.NewErrorEvent(err))
		} else {
			r.log.Warn("event dropped for unverifiable token",
				"token", domain.MaskToken(token),
				"code", domain.GetErrorCode(terr),
			)
		}
	}
	return err
}

func (r *Router) dispatch(ctx context.Context, token string, ev domain.ClientEvent) error {
	// 1. Authenticate
	claims, lobby, err := r.resolve(ctx, token)
	if err != nil {
		return err
	}

	// 2. Throttle before touching the lobby
	if !r.limiters.Allow(claims.SessionID) {
		return domain.ErrRateLimited
	}

	// 3. Validate the event shape
	if err := ev.Valid(); err != nil {
		return err
	}

	// 4. Apply under the lobby lock
	switch ev.Type {
	case domain.EventMove:
		return r.handleMove(claims, lobby, ev.Pos)
	case domain.EventChat:
		return r.handleChat(claims, lobby, ev.Text)
	case domain.EventReset:
		return r.handleReset(claims, lobby)
	case domain.EventLeave:
		return r.handleLeave(ctx, claims, lobby)
	default:
		return domain.ErrBadRequest.WithDetails("unknown event type")
	}
}

// resolve authenticates a token and returns its claims and lobby.
func (r *Router) resolve(ctx context.Context, token string) (*domain.TokenClaims, *domain.Lobby, error) {
	claims, err := r.tokens.Validate(token)
	if err != nil {
		return nil, nil, err
	}

	lobby, err := r.repo.LobbyBySession(ctx, claims.SessionID)
	if err != nil {
		return nil, nil, err
	}

	// A token for lobby A must not act on lobby B, even if the session
	// binding was somehow reused.
	if lobby.Code != claims.LobbyCode {
		return nil, nil, domain.ErrTokenInvalid.WithDetails("token lobby mismatch")
	}

	return claims, lobby, nil
}

func (r *Router) handleMove(claims *domain.TokenClaims, lobby *domain.Lobby, pos int) error {
	lobby.Lock()
	p := lobby.PlayerBySession(claims.SessionID)
	if p == nil {
		lobby.Unlock()
		return domain.ErrNotAPlayer
	}
	if err := lobby.Game.ApplyMove(p.Mark, pos); err != nil {
		lobby.Unlock()
		return err
	}
	finished := lobby.Game.Phase == domain.Finished
	if finished {
		lobby.FinishedAt = time.Now().UnixMilli()
	}
	state := lobby.Snapshot()
	recipients := r.recipientsLocked(lobby)
	lobby.Unlock()

	r.metrics.MoveAccepted()
	if finished {
		r.metrics.GameFinished(string(state.Result.Kind))
		r.log.Info("game finished",
			"lobby", lobby.Code,
			"result", string(state.Result.Kind),
			"moves", state.Moves,
		)
	}

	r.deliver(recipients, domain.NewStateEvent(state))
	return nil
}

func (r *Router) handleChat(claims *domain.TokenClaims, lobby *domain.Lobby, text string) error {
	lobby.Lock()
	p := lobby.PlayerBySession(claims.SessionID)
	if p == nil {
		lobby.Unlock()
		return domain.ErrNotAPlayer
	}
	from := p.Name
	// Relayed verbatim to the other seat only; the sender already has
	// its own message.
	recipients := make([]string, 0, 1)
	for _, id := range r.recipientsLocked(lobby) {
		if id != claims.SessionID {
			recipients = append(recipients, id)
		}
	}
	lobby.Unlock()

	r.metrics.ChatRelayed()
	r.deliver(recipients, domain.NewChatEvent(from, text))
	return nil
}

func (r *Router) handleReset(claims *domain.TokenClaims, lobby *domain.Lobby) error {
	lobby.Lock()
	p := lobby.PlayerBySession(claims.SessionID)
	if p == nil {
		lobby.Unlock()
		return domain.ErrNotAPlayer
	}
	if err := lobby.ResetGame(); err != nil {
		lobby.Unlock()
		return err
	}
	state := lobby.Snapshot()
	recipients := r.recipientsLocked(lobby)
	lobby.Unlock()

	r.log.Info("rematch started", "lobby", lobby.Code)
	r.deliver(recipients, domain.NewStateEvent(state))
	return nil
}

func (r *Router) handleLeave(ctx context.Context, claims *domain.TokenClaims, lobby *domain.Lobby) error {
	res, err := r.lobbies.Leave(ctx, claims.SessionID)
	if err != nil {
		return err
	}

	if c, ok := r.conns.Pop(claims.SessionID); ok {
		c.close()
	}
	r.limiters.Forget(claims.SessionID)

	if res.Finished {
		r.metrics.GameFinished(string(domain.ResultAbandoned))
	}
	if res.LobbyRemoved {
		return nil
	}

	// Tell the remaining player what happened.
	lobby.Lock()
	recipients := r.recipientsLocked(lobby)
	lobby.Unlock()

	r.deliver(recipients, domain.NewPlayerLeftEvent(res.Player.Name, res.Player.Mark))
	r.deliver(recipients, domain.NewStateEvent(res.State))
	return nil
}

// BroadcastState pushes the lobby's current snapshot to every attached
// session. Used by the lifecycle sweeper after grace finalization.
func (r *Router) BroadcastState(lobby *domain.Lobby) {
	lobby.Lock()
	state := lobby.Snapshot()
	recipients := r.recipientsLocked(lobby)
	lobby.Unlock()

	r.deliver(recipients, domain.NewStateEvent(state))
}

// recipientsLocked collects the session IDs of connected seats. The
// caller holds the lobby lock.
func (r *Router) recipientsLocked(lobby *domain.Lobby) []string {
	ids := make([]string, 0, domain.MaxPlayers)
	for _, p := range lobby.Players {
		if p.SessionID != "" {
			ids = append(ids, p.SessionID)
		}
	}
	return ids
}

// deliver sends an event to each recipient, outside any lobby lock.
func (r *Router) deliver(sessionIDs []string, ev domain.ServerEvent) {
	for _, id := range sessionIDs {
		r.sendTo(id, ev)
	}
}

// sendTo sends an event to one session's sink. A full buffer drops the
// sink; the transport layer notices the closed channel and reattaches
// or gives up.
func (r *Router) sendTo(sessionID string, ev domain.ServerEvent) {
	c, ok := r.conns.Get(sessionID)
	if !ok {
		return
	}
	if !c.send(ev) {
		r.conns.Delete(sessionID)
		r.log.Warn("event buffer overflow, dropping session sink",
			"session_id", sessionID,
		)
	}
}

// ConnCount returns the number of attached sessions.
func (r *Router) ConnCount() int {
	return r.conns.Count()
}

// ============================================================================
// conn - Per-Session Event Sink
// ============================================================================

// conn is one session's buffered event channel.
type conn struct {
	sessionID string
	ch        chan domain.ServerEvent

	mu     sync.Mutex
	closed bool
}

func newConn(sessionID string, buffer int) *conn {
	return &conn{
		sessionID: sessionID,
		ch:        make(chan domain.ServerEvent, buffer),
	}
}

// send delivers without blocking. Returns false when the buffer is
// full; the conn is closed in that case so the reader unblocks.
func (c *conn) send(ev domain.ServerEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.ch <- ev:
		return true
	default:
		c.closed = true
		close(c.ch)
		return false
	}
}

func (c *conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.ch)
	}
}

// ============================================================================
// sessionLimiters - Per-Session Rate Limiting
// ============================================================================

// sessionLimiters manages one token bucket per session.
type sessionLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newSessionLimiters(limit rate.Limit, burst int) *sessionLimiters {
	return &sessionLimiters{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

// Allow reports whether the session may send another event now.
func (s *sessionLimiters) Allow(sessionID string) bool {
	s.mu.Lock()
	limiter, exists := s.limiters[sessionID]
	if !exists {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[sessionID] = limiter
	}
	s.mu.Unlock()

	return limiter.Allow()
}

// Forget drops the limiter for a departed session.
func (s *sessionLimiters) Forget(sessionID string) {
	s.mu.Lock()
	delete(s.limiters, sessionID)
	s.mu.Unlock()
}
