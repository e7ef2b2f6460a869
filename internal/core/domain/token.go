// Package domain defines the core domain models for GridMatch.
package domain

import (
	"encoding/base64"
	"strings"
)

// TokenClaims is the identity a signed token carries. The token binds
// one user to one session in one lobby; it is issued exactly once at
// join time and never rebound.
type TokenClaims struct {
	// UserID is the player identity (gmus-...).
	UserID string `json:"user_id"`

	// SessionID is the seat session (gmss-...).
	SessionID string `json:"session_id"`

	// LobbyCode is the lobby the session is seated in.
	LobbyCode string `json:"lobby_code"`

	// IssuedAt is the issue timestamp (Unix milliseconds).
	IssuedAt int64 `json:"issued_at"`

	// ExpiresAt is the expiry timestamp (Unix milliseconds).
	ExpiresAt int64 `json:"expires_at"`
}

// Validate checks the claims for structural completeness.
// Returns a DomainError with code GM-AUTH-4000 if a field is missing.
func (c *TokenClaims) Validate() error {
	var violations []string

	if !IsValidUserID(c.UserID) {
		violations = append(violations, "user_id is not a valid id")
	}
	if !IsValidSessionID(c.SessionID) {
		violations = append(violations, "session_id is not a valid id")
	}
	if c.LobbyCode == "" {
		violations = append(violations, "lobby_code is required")
	}

	if len(violations) > 0 {
		return ErrTokenMalformed.WithDetails(strings.Join(violations, "; "))
	}
	return nil
}

// ValidateTokenFormat checks if a string is shaped like a signed token
// (three non-empty Base64 RawURL segments separated by dots). Shape
// checking is cheap and lets callers reject garbage before any
// cryptographic work.
func ValidateTokenFormat(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
		if _, err := base64.RawURLEncoding.DecodeString(part); err != nil {
			return false
		}
	}
	return true
}

// MaskToken masks a token for safe logging.
// Example: eyJhbGci...A9fQ
func MaskToken(token string) string {
	if len(token) < 16 {
		return "***REDACTED***"
	}
	return token[:8] + "..." + token[len(token)-4:]
}
