package gamecode

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	code, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(code) != DefaultLength {
		t.Errorf("Generate() length = %d, want %d", len(code), DefaultLength)
	}
	for _, r := range code {
		if !strings.ContainsRune(Alphabet, r) {
			t.Errorf("Generate() produced character %q outside alphabet", r)
		}
	}
}

func TestGenerateWithLength(t *testing.T) {
	for _, length := range []int{1, 4, 6, 12, 32} {
		code, err := GenerateWithLength(length)
		if err != nil {
			t.Fatalf("GenerateWithLength(%d) error = %v", length, err)
		}
		if len(code) != length {
			t.Errorf("GenerateWithLength(%d) length = %d", length, len(code))
		}
	}
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if seen[code] {
			t.Fatalf("duplicate code %q after %d generations", code, i)
		}
		seen[code] = true
	}
}

func TestAlphabetExcludesAmbiguous(t *testing.T) {
	for _, r := range "0O1ILU" {
		if strings.ContainsRune(Alphabet, r) {
			t.Errorf("alphabet contains ambiguous character %q", r)
		}
	}
	if len(Alphabet) != 30 {
		t.Errorf("alphabet length = %d, want 30", len(Alphabet))
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"AB23XY", true},
		{"ZZZZZZ", true},
		{"AB23", true},         // minimum configurable length
		{"AB23XYZ9", true},     // non-default length, still a valid code
		{"AB23XYZ9AB23", true}, // maximum configurable length
		{"ab23xy", false},      // lowercase
		{"AB2", false},         // below minimum
		{"AB23XYZ9AB23X", false},
		{"AB10XY", false}, // ambiguous characters
		{"", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.code); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  ab23xy "); got != "AB23XY" {
		t.Errorf("Normalize = %q, want AB23XY", got)
	}
}
