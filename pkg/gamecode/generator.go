// Package gamecode provides lobby code generation and validation utilities.
package gamecode

import (
	"crypto/rand"
	"strings"
)

// Alphabet is the set of characters used in lobby codes.
//
// Ambiguous characters (0/O, 1/I/L, and U per Crockford) are excluded so
// codes survive being read aloud or scribbled on paper.
const Alphabet = "23456789ABCDEFGHJKMNPQRSTVWXYZ"

// Code length bounds. DefaultLength is used when no length is
// configured; MinLength and MaxLength bound the configurable range.
const (
	DefaultLength = 6
	MinLength     = 4
	MaxLength     = 12
)

// Generate generates a cryptographically secure random lobby code
// of the default length.
func Generate() (string, error) {
	return GenerateWithLength(DefaultLength)
}

// GenerateWithLength generates a code with the specified character length.
func GenerateWithLength(length int) (string, error) {
	// Rejection sampling: accept only bytes below the largest multiple
	// of len(Alphabet) so every character is equally likely.
	const limit = byte(256 - 256%len(Alphabet)) // 240

	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

// Valid reports whether code has a length within the configurable
// bounds and draws only from the code alphabet. Length is a range, not
// an exact match, so a registry running a non-default code_length
// still accepts the codes it issued.
func Valid(code string) bool {
	if len(code) < MinLength || len(code) > MaxLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}

// Normalize upper-cases and trims a user-supplied code before lookup.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
