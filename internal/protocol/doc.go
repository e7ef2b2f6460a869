// Package protocol defines the JSON wire encoding for game events.
//
// The router itself is transport-agnostic: it consumes domain.ClientEvent
// values and emits domain.ServerEvent values on per-session channels. This
// package gives transport integrations (WebSocket gateways, TCP bridges,
// test harnesses) one canonical envelope so every integration speaks the
// same bytes:
//
//	{"v":1,"kind":"client","seq":3,"event":{"type":"move","pos":4}}
//	{"v":1,"kind":"server","seq":7,"server_event":{"type":"lobby_state","state":{...}}}
//
// Envelopes are newline-delimited when streamed; Encoder and Decoder wrap
// encoding/json for that framing.
package protocol
