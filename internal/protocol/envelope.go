// Package protocol defines the JSON wire encoding for game events.
package protocol

import (
	"encoding/json"
	"io"

	"github.com/yndnr/gridmatch-go/internal/core/domain"
)

// Version is the current envelope version.
const Version = 1

// Kind discriminates the direction of an envelope.
type Kind string

// Envelope kinds.
const (
	KindClient Kind = "client"
	KindServer Kind = "server"
)

// Envelope frames one event on the wire.
type Envelope struct {
	// V is the envelope version; decoders reject versions they do not know.
	V int `json:"v"`

	// Kind selects which event field is populated.
	Kind Kind `json:"kind"`

	// Seq is a sender-assigned sequence number, echoed for correlation.
	// Zero means the sender does not correlate.
	Seq uint64 `json:"seq,omitempty"`

	// Client carries the event for KindClient envelopes.
	Client *domain.ClientEvent `json:"event,omitempty"`

	// Server carries the event for KindServer envelopes.
	Server *domain.ServerEvent `json:"server_event,omitempty"`
}

// EncodeClient marshals a client event into a versioned envelope.
func EncodeClient(seq uint64, ev domain.ClientEvent) ([]byte, error) {
	return json.Marshal(Envelope{
		V:      Version,
		Kind:   KindClient,
		Seq:    seq,
		Client: &ev,
	})
}

// EncodeServer marshals a server event into a versioned envelope.
func EncodeServer(seq uint64, ev domain.ServerEvent) ([]byte, error) {
	return json.Marshal(Envelope{
		V:      Version,
		Kind:   KindServer,
		Seq:    seq,
		Server: &ev,
	})
}

// Decode parses one envelope and checks its framing invariants.
func Decode(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, domain.ErrBadRequest.WithDetails("malformed envelope").WithCause(err)
	}
	if err := env.check(); err != nil {
		return nil, err
	}
	return &env, nil
}

// DecodeClient parses an envelope that must carry a client event.
func DecodeClient(data []byte) (domain.ClientEvent, error) {
	env, err := Decode(data)
	if err != nil {
		return domain.ClientEvent{}, err
	}
	if env.Kind != KindClient || env.Client == nil {
		return domain.ClientEvent{}, domain.ErrBadRequest.WithDetails("expected client envelope")
	}
	if err := env.Client.Valid(); err != nil {
		return domain.ClientEvent{}, err
	}
	return *env.Client, nil
}

func (e *Envelope) check() error {
	if e.V != Version {
		return domain.ErrBadRequest.WithDetails("unsupported envelope version")
	}
	switch e.Kind {
	case KindClient:
		if e.Client == nil {
			return domain.ErrMissingArgument.WithDetails("client envelope without event")
		}
	case KindServer:
		if e.Server == nil {
			return domain.ErrMissingArgument.WithDetails("server envelope without event")
		}
	default:
		return domain.ErrBadRequest.WithDetails("unknown envelope kind")
	}
	return nil
}

// Encoder writes newline-delimited envelopes to a stream.
type Encoder struct {
	enc *json.Encoder
	seq uint64
}

// NewEncoder creates an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

// WriteServer frames and writes one server event. Sequence numbers are
// assigned monotonically per encoder, starting at 1.
func (e *Encoder) WriteServer(ev domain.ServerEvent) error {
	e.seq++
	return e.enc.Encode(Envelope{
		V:      Version,
		Kind:   KindServer,
		Seq:    e.seq,
		Server: &ev,
	})
}

// WriteClient frames and writes one client event.
func (e *Encoder) WriteClient(ev domain.ClientEvent) error {
	e.seq++
	return e.enc.Encode(Envelope{
		V:      Version,
		Kind:   KindClient,
		Seq:    e.seq,
		Client: &ev,
	})
}

// Decoder reads newline-delimited envelopes from a stream.
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: json.NewDecoder(r)}
}

// Read parses the next envelope from the stream. io.EOF passes through
// unchanged so callers can terminate their read loop on it.
func (d *Decoder) Read() (*Envelope, error) {
	var env Envelope
	if err := d.dec.Decode(&env); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, domain.ErrBadRequest.WithDetails("malformed envelope").WithCause(err)
	}
	if err := env.check(); err != nil {
		return nil, err
	}
	return &env, nil
}
