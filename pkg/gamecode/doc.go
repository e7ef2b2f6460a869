// Package gamecode provides lobby code generation and validation utilities.
//
// This package implements cryptographically secure short-code generation
// for lobby identifiers that players relay to each other out of band.
//
// Code Format:
//
//   - Length: 6 characters (default)
//   - Alphabet: 30 unambiguous characters (no 0/O, 1/I/L, U)
//
// Security:
//
//   - Uses crypto/rand for CSPRNG
//   - Rejection sampling avoids modulo bias
//
// Codes are identifiers, not credentials: knowing a code only lets a
// player request to join, never act on another player's behalf.
package gamecode
