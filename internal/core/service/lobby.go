// Package service provides domain services for GridMatch.
//
// LobbyService handles lobby registry operations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yndnr/gridmatch-go/internal/core/domain"
	"github.com/yndnr/gridmatch-go/internal/telemetry/metric"
	"github.com/yndnr/gridmatch-go/pkg/gamecode"
)

// LobbyRepository defines the storage interface for lobby operations.
type LobbyRepository interface {
	// CreateLobby registers a lobby under its code.
	// Returns ErrCodeConflict when the code is already taken.
	CreateLobby(ctx context.Context, lobby *domain.Lobby) error

	// GetLobby retrieves a lobby by code.
	GetLobby(ctx context.Context, code string) (*domain.Lobby, error)

	// RemoveLobby deletes a lobby and its session bindings. Idempotent.
	RemoveLobby(ctx context.Context, code string) error

	// BindSession records which lobby a session belongs to.
	BindSession(ctx context.Context, sessionID, code string) error

	// UnbindSession removes a session binding. Idempotent.
	UnbindSession(ctx context.Context, sessionID string)

	// LobbyBySession resolves a session to its lobby.
	LobbyBySession(ctx context.Context, sessionID string) (*domain.Lobby, error)
}

// LobbyService manages the lobby registry: creation with code
// allocation, joining, lookup and removal.
type LobbyService struct {
	repo    LobbyRepository
	tokens  *TokenService
	metrics *metric.Metrics

	codeLength  int
	codeRetries int
	grace       time.Duration
}

// LobbyServiceConfig holds configuration for LobbyService.
type LobbyServiceConfig struct {
	// CodeLength is the join code length (default: 6).
	CodeLength int

	// CodeRetries is how many fresh codes to try on collision before
	// giving up (default: 8).
	CodeRetries int

	// Grace is the disconnect grace period before an in-progress game
	// is abandoned (default: 30s). Zero disables the grace period.
	Grace time.Duration
}

// DefaultLobbyServiceConfig returns default configuration.
func DefaultLobbyServiceConfig() *LobbyServiceConfig {
	return &LobbyServiceConfig{
		CodeLength:  gamecode.DefaultLength,
		CodeRetries: 8,
		Grace:       30 * time.Second,
	}
}

// NewLobbyService creates a new LobbyService. metrics may be nil.
func NewLobbyService(repo LobbyRepository, tokens *TokenService, metrics *metric.Metrics, config *LobbyServiceConfig) *LobbyService {
	if config == nil {
		config = DefaultLobbyServiceConfig()
	}
	length := config.CodeLength
	if length <= 0 {
		length = gamecode.DefaultLength
	}
	retries := config.CodeRetries
	if retries <= 0 {
		retries = 8
	}

	return &LobbyService{
		repo:        repo,
		tokens:      tokens,
		metrics:     metrics,
		codeLength:  length,
		codeRetries: retries,
		grace:       config.Grace,
	}
}

// Grace returns the configured disconnect grace period.
func (s *LobbyService) Grace() time.Duration {
	return s.grace
}

// ============================================================================
// Lobby Create Operation
// ============================================================================

// CreateLobbyRequest contains parameters for lobby creation.
type CreateLobbyRequest struct {
	PlayerName string // Required, display name of the creator
}

// CreateLobbyResponse contains the result of lobby creation.
type CreateLobbyResponse struct {
	Code      string            // The allocated join code
	Token     string            // Signed session token (only returned once)
	SessionID string            // The creator's session ID
	Mark      domain.Mark       // The creator's mark (always X)
	State     domain.LobbyState // Initial lobby snapshot
}

// Create allocates a fresh code, registers the lobby and seats the
// creator as the first player.
func (s *LobbyService) Create(ctx context.Context, req *CreateLobbyRequest) (*CreateLobbyResponse, error) {
	// 1. Validate input
	if err := domain.ValidatePlayerName(req.PlayerName); err != nil {
		return nil, err
	}

	// 2. Allocate a code; retry on collision with a fresh random code
	var lobby *domain.Lobby
	allocated := false
	for i := 0; i < s.codeRetries; i++ {
		code, err := gamecode.GenerateWithLength(s.codeLength)
		if err != nil {
			return nil, domain.ErrInternalServer.WithCause(err)
		}
		lobby = domain.NewLobby(code)
		if err := s.repo.CreateLobby(ctx, lobby); err != nil {
			if domain.IsDomainError(err, domain.ErrCodeConflict.Code) {
				continue
			}
			return nil, err
		}
		allocated = true
		break
	}
	if !allocated {
		return nil, domain.ErrCodeExhausted.WithDetails(
			fmt.Sprintf("no free code after %d attempts", s.codeRetries),
		)
	}

	// 3. Seat the creator
	sess, err := domain.NewSession(lobby.Code, req.PlayerName)
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}

	lobby.Lock()
	_, _, err = lobby.Attach(sess)
	state := lobby.Snapshot()
	lobby.Unlock()
	if err != nil {
		return nil, err
	}

	if err := s.repo.BindSession(ctx, sess.ID, lobby.Code); err != nil {
		return nil, err
	}

	// 4. Issue the session token
	token, _, err := s.tokens.Issue(sess)
	if err != nil {
		return nil, err
	}

	s.metrics.LobbyCreated()

	return &CreateLobbyResponse{
		Code:      lobby.Code,
		Token:     token,
		SessionID: sess.ID,
		Mark:      sess.Mark,
		State:     state,
	}, nil
}

// ============================================================================
// Lobby Join Operation
// ============================================================================

// JoinLobbyRequest contains parameters for joining a lobby.
type JoinLobbyRequest struct {
	Code       string // Required, the join code
	PlayerName string // Required, display name
}

// JoinLobbyResponse contains the result of joining.
type JoinLobbyResponse struct {
	Code      string            // Normalized lobby code
	Token     string            // Signed session token (only returned once)
	SessionID string            // The joiner's session ID
	Mark      domain.Mark       // The joiner's mark
	Started   bool              // Whether this join started the game
	Rejoined  bool              // Whether this was a grace-period rejoin
	State     domain.LobbyState // Lobby snapshot after the join
}

// Join seats a player in an existing lobby.
func (s *LobbyService) Join(ctx context.Context, req *JoinLobbyRequest) (*JoinLobbyResponse, error) {
	// 1. Validate input
	if err := domain.ValidatePlayerName(req.PlayerName); err != nil {
		return nil, err
	}
	code := gamecode.Normalize(req.Code)
	if !gamecode.Valid(code) {
		return nil, domain.ErrInvalidArgument.WithDetails("malformed lobby code")
	}

	// 2. Lookup the lobby
	lobby, err := s.repo.GetLobby(ctx, code)
	if err != nil {
		return nil, err
	}

	// 3. Seat the player
	sess, err := domain.NewSession(code, req.PlayerName)
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}

	lobby.Lock()
	started, rejoined, err := lobby.Attach(sess)
	state := lobby.Snapshot()
	lobby.Unlock()
	if err != nil {
		return nil, err
	}

	if err := s.repo.BindSession(ctx, sess.ID, code); err != nil {
		return nil, err
	}

	// 4. Issue the session token
	token, _, err := s.tokens.Issue(sess)
	if err != nil {
		return nil, err
	}

	return &JoinLobbyResponse{
		Code:      code,
		Token:     token,
		SessionID: sess.ID,
		Mark:      sess.Mark,
		Started:   started,
		Rejoined:  rejoined,
		State:     state,
	}, nil
}

// ============================================================================
// Lobby Get / Remove / Leave Operations
// ============================================================================

// GetLobbyRequest contains parameters for lobby lookup.
type GetLobbyRequest struct {
	Code string
}

// GetLobbyResponse contains the lobby snapshot.
type GetLobbyResponse struct {
	State domain.LobbyState
}

// Get returns the current snapshot of a lobby.
func (s *LobbyService) Get(ctx context.Context, req *GetLobbyRequest) (*GetLobbyResponse, error) {
	code := gamecode.Normalize(req.Code)
	if !gamecode.Valid(code) {
		return nil, domain.ErrInvalidArgument.WithDetails("malformed lobby code")
	}

	lobby, err := s.repo.GetLobby(ctx, code)
	if err != nil {
		return nil, err
	}

	lobby.Lock()
	state := lobby.Snapshot()
	lobby.Unlock()

	return &GetLobbyResponse{State: state}, nil
}

// RemoveLobbyRequest contains parameters for lobby removal.
type RemoveLobbyRequest struct {
	Code string
}

// RemoveLobbyResponse contains the result of removal.
type RemoveLobbyResponse struct {
	Removed bool
}

// Remove deletes a lobby from the registry. Idempotent: removing an
// unknown code succeeds.
func (s *LobbyService) Remove(ctx context.Context, req *RemoveLobbyRequest) (*RemoveLobbyResponse, error) {
	code := gamecode.Normalize(req.Code)
	if !gamecode.Valid(code) {
		return nil, domain.ErrInvalidArgument.WithDetails("malformed lobby code")
	}

	if err := s.repo.RemoveLobby(ctx, code); err != nil {
		return nil, err
	}
	s.metrics.LobbyRemoved()
	return &RemoveLobbyResponse{Removed: true}, nil
}

// LeaveResult describes the effect of a session leaving its lobby.
type LeaveResult struct {
	Player       *domain.Player    // The seat that left
	Finished     bool              // Whether the game ended as abandoned
	LobbyRemoved bool              // Whether the lobby was garbage collected
	State        domain.LobbyState // Lobby snapshot after the leave
}

// Leave detaches a session from its lobby. An in-progress game either
// gets a grace deadline or ends immediately, per configuration. A
// lobby left with no live session and no running grace period is
// removed.
func (s *LobbyService) Leave(ctx context.Context, sessionID string) (*LeaveResult, error) {
	// 1. Resolve the lobby
	lobby, err := s.repo.LobbyBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// 2. Detach under the lobby lock
	lobby.Lock()
	player, finished, err := lobby.Detach(sessionID, s.grace)
	empty := lobby.Empty() && !lobby.GraceActive(time.Now().UnixMilli())
	state := lobby.Snapshot()
	lobby.Unlock()
	if err != nil {
		return nil, err
	}

	s.repo.UnbindSession(ctx, sessionID)

	// 3. Garbage collect an abandoned lobby
	removed := false
	if empty {
		if err := s.repo.RemoveLobby(ctx, lobby.Code); err == nil {
			removed = true
			s.metrics.LobbyRemoved()
		}
	}

	return &LeaveResult{
		Player:       player,
		Finished:     finished,
		LobbyRemoved: removed,
		State:        state,
	}, nil
}
