// Package domain defines the core domain models for GridMatch.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
// Error codes follow the format GM-<AREA>-<NNNN>.
type DomainError struct {
	Code    string // Error code (e.g., "GM-LOBY-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true // Only check if it's a DomainError
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Authentication Errors (AUTH)
// ============================================================================

var (
	// ErrTokenMalformed indicates the token is not a well-formed credential.
	ErrTokenMalformed = NewDomainError("GM-AUTH-4000", "malformed token")

	// ErrTokenInvalid indicates the token signature does not verify.
	ErrTokenInvalid = NewDomainError("GM-AUTH-4010", "invalid token signature")

	// ErrTokenExpired indicates the token has expired.
	ErrTokenExpired = NewDomainError("GM-AUTH-4011", "token expired")

	// ErrUnknownLobby indicates the token verifies but its lobby no longer exists.
	ErrUnknownLobby = NewDomainError("GM-AUTH-4012", "token references unknown lobby")
)

// ============================================================================
// Lobby Errors (LOBY)
// ============================================================================

var (
	// ErrLobbyNotFound indicates no lobby exists under the given code.
	ErrLobbyNotFound = NewDomainError("GM-LOBY-4040", "lobby not found")

	// ErrLobbyFull indicates both seats are already taken.
	ErrLobbyFull = NewDomainError("GM-LOBY-4090", "lobby full")

	// ErrLobbyStarted indicates the game has already started.
	ErrLobbyStarted = NewDomainError("GM-LOBY-4091", "game already started")

	// ErrCodeConflict indicates the code is already registered.
	ErrCodeConflict = NewDomainError("GM-LOBY-4092", "lobby code already in use")

	// ErrCodeExhausted indicates code allocation failed after all retries.
	ErrCodeExhausted = NewDomainError("GM-LOBY-5090", "could not allocate a free lobby code")
)

// ============================================================================
// Game Errors (GAME)
// ============================================================================

var (
	// ErrInvalidPosition indicates a move outside the board.
	ErrInvalidPosition = NewDomainError("GM-GAME-4001", "invalid board position")

	// ErrNotYourTurn indicates a move by the player whose turn it is not.
	ErrNotYourTurn = NewDomainError("GM-GAME-4030", "not your turn")

	// ErrCellOccupied indicates a move onto an occupied cell.
	ErrCellOccupied = NewDomainError("GM-GAME-4091", "cell already occupied")

	// ErrGameFinished indicates a move after the game reached a terminal state.
	ErrGameFinished = NewDomainError("GM-GAME-4092", "game already finished")

	// ErrGameNotStarted indicates a move before both players joined.
	ErrGameNotStarted = NewDomainError("GM-GAME-4093", "game not started")

	// ErrNotAPlayer indicates the session is not seated in the lobby.
	ErrNotAPlayer = NewDomainError("GM-GAME-4031", "session is not a player in this lobby")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternalServer indicates an internal server error.
	ErrInternalServer = NewDomainError("GM-SYS-5000", "internal server error")

	// ErrServiceUnavailable indicates the service is temporarily unavailable.
	ErrServiceUnavailable = NewDomainError("GM-SYS-5030", "service unavailable")

	// ErrBadRequest indicates a malformed request.
	ErrBadRequest = NewDomainError("GM-SYS-4000", "bad request")

	// ErrRateLimited indicates too many requests.
	ErrRateLimited = NewDomainError("GM-SYS-4290", "too many requests")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("GM-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("GM-ARG-1002", "missing required argument")
)
