// Package domain defines the core domain models for GridMatch.
package domain

import "errors"

// ClientEventType discriminates inbound events.
type ClientEventType string

// Client event types.
const (
	EventMove  ClientEventType = "move"
	EventLeave ClientEventType = "leave"
	EventChat  ClientEventType = "chat"
	EventReset ClientEventType = "reset"
)

// ClientEvent is one inbound action from an authenticated session.
// Type selects the variant; only the matching payload field is read.
type ClientEvent struct {
	Type ClientEventType `json:"type"`

	// Pos is the board position for EventMove.
	Pos int `json:"pos,omitempty"`

	// Text is the message body for EventChat.
	Text string `json:"text,omitempty"`
}

// Valid checks the event against its variant's constraints.
func (e ClientEvent) Valid() error {
	switch e.Type {
	case EventMove, EventLeave, EventChat, EventReset:
	default:
		return ErrBadRequest.WithDetails("unknown event type")
	}
	if e.Type == EventChat && e.Text == "" {
		return ErrMissingArgument.WithDetails("chat text is required")
	}
	return nil
}

// ServerEventType discriminates outbound events.
type ServerEventType string

// Server event types.
const (
	EventLobbyState   ServerEventType = "lobby_state"
	EventError        ServerEventType = "error"
	EventPlayerJoined ServerEventType = "player_joined"
	EventPlayerLeft   ServerEventType = "player_left"
	EventChatRelay    ServerEventType = "chat"
)

// ServerEvent is one outbound message to an attached session.
// Type selects the variant; only the matching payload fields are set.
type ServerEvent struct {
	Type ServerEventType `json:"type"`

	// State is the full lobby snapshot for EventLobbyState.
	State *LobbyState `json:"state,omitempty"`

	// Code and Message carry the rejection for EventError.
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`

	// Name and Mark identify the seat for EventPlayerJoined/EventPlayerLeft.
	Name string `json:"name,omitempty"`
	Mark Mark   `json:"mark,omitempty"`

	// From and Text carry a relayed chat message for EventChatRelay.
	From string `json:"from,omitempty"`
	Text string `json:"text,omitempty"`
}

// NewStateEvent builds the lobby_state variant from a snapshot.
func NewStateEvent(state LobbyState) ServerEvent {
	return ServerEvent{
		Type:  EventLobbyState,
		State: &state,
	}
}

// NewChatEvent builds the chat relay variant.
func NewChatEvent(from, text string) ServerEvent {
	return ServerEvent{
		Type: EventChatRelay,
		From: from,
		Text: text,
	}
}

// NewPlayerJoinedEvent builds the player_joined variant.
func NewPlayerJoinedEvent(name string, mark Mark) ServerEvent {
	return ServerEvent{
		Type: EventPlayerJoined,
		Name: name,
		Mark: mark,
	}
}

// NewPlayerLeftEvent builds the player_left variant.
func NewPlayerLeftEvent(name string, mark Mark) ServerEvent {
	return ServerEvent{
		Type: EventPlayerLeft,
		Name: name,
		Mark: mark,
	}
}

// NewErrorEvent builds the error variant from a domain error.
func NewErrorEvent(err error) ServerEvent {
	var de *DomainError
	if !errors.As(err, &de) {
		de = ErrInternalServer
	}
	return ServerEvent{
		Type:    EventError,
		Code:    de.Code,
		Message: de.Message,
	}
}

// PlayerInfo is the public view of one seat.
type PlayerInfo struct {
	Name      string `json:"name"`
	Mark      Mark   `json:"mark"`
	Connected bool   `json:"connected"`
}

// LobbyState is the full snapshot broadcast after every accepted event.
// Receivers render from it alone; no incremental diffs are sent.
type LobbyState struct {
	Code    string       `json:"code"`
	Phase   Phase        `json:"phase"`
	Players []PlayerInfo `json:"players"`
	Board   Board        `json:"board"`
	Turn    Mark         `json:"turn"`
	Result  Result       `json:"result"`
	Moves   int          `json:"moves"`
}
