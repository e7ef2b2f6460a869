// Package domain defines the core domain models for GridMatch.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling.
package domain

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Session constraints.
const (
	MaxPlayerNameLength = 32

	// SessionIDPrefix is the prefix for session IDs.
	SessionIDPrefix = "gmss-"

	// UserIDPrefix is the prefix for user IDs.
	UserIDPrefix = "gmus-"
)

// Session binds one authenticated player seat to a lobby.
//
// A session is created at join time and its ID travels inside the
// signed token; it is never reused across lobbies or rejoins.
type Session struct {
	// ID is the unique identifier for the session.
	// Format: gmss-{ulid_lowercase}, 31 characters total.
	ID string `json:"id"`

	// UserID identifies the player who owns this session.
	// Format: gmus-{ulid_lowercase}, 31 characters total.
	UserID string `json:"user_id"`

	// LobbyCode is the code of the lobby this session is seated in.
	LobbyCode string `json:"lobby_code"`

	// PlayerName is the display name chosen at join time.
	PlayerName string `json:"player_name"`

	// Mark is the seat assigned at join time (X or O).
	Mark Mark `json:"mark"`

	// CreatedAt is the session creation timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`

	// ExpiresAt is the expiry of the session's credential (Unix
	// milliseconds), set when the token is issued.
	ExpiresAt int64 `json:"expires_at"`
}

// NewSession creates a new Session with generated session and user IDs.
func NewSession(lobbyCode, playerName string) (*Session, error) {
	id, err := GenerateSessionID()
	if err != nil {
		return nil, err
	}
	userID, err := GenerateUserID()
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:         id,
		UserID:     userID,
		LobbyCode:  lobbyCode,
		PlayerName: playerName,
		CreatedAt:  time.Now().UnixMilli(),
	}, nil
}

// GenerateSessionID generates a new session ID using ULID.
// Format: gmss-{ulid_lowercase}, 31 characters total.
func GenerateSessionID() (string, error) {
	return generateID(SessionIDPrefix)
}

// GenerateUserID generates a new user ID using ULID.
// Format: gmus-{ulid_lowercase}, 31 characters total.
func GenerateUserID() (string, error) {
	return generateID(UserIDPrefix)
}

func generateID(prefix string) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternalServer.WithCause(err)
	}
	return prefix + strings.ToLower(id.String()), nil
}

// IsValidSessionID checks if a string is a valid session ID format.
// It normalizes the ID to lowercase before validation.
func IsValidSessionID(id string) bool {
	return isValidID(id, SessionIDPrefix)
}

// IsValidUserID checks if a string is a valid user ID format.
func IsValidUserID(id string) bool {
	return isValidID(id, UserIDPrefix)
}

func isValidID(id, prefix string) bool {
	id = strings.ToLower(id)

	if !strings.HasPrefix(id, prefix) {
		return false
	}

	// prefix (5) + ULID (26) = 31 characters
	if len(id) != 31 {
		return false
	}

	ulidPart := strings.ToUpper(id[len(prefix):])
	_, err := ulid.Parse(ulidPart)
	return err == nil
}

// ValidatePlayerName validates a join-time display name.
// Returns a DomainError with code GM-ARG-1001 if validation fails.
func ValidatePlayerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrMissingArgument.WithDetails("player name is required")
	}
	if len(name) > MaxPlayerNameLength {
		return ErrInvalidArgument.WithDetails("player name exceeds 32 characters")
	}
	return nil
}
