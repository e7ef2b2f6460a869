package repl

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	r := New(nil)
	if r == nil {
		t.Fatal("New returned nil")
	}
	if r.completer == nil {
		t.Error("completer should be initialized")
	}
	if r.history == nil {
		t.Error("history should be initialized")
	}
}

func TestREPL_Run_Exit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"exit command", "exit\n"},
		{"quit command", "quit\n"},
		{"EOF", ""}, // No newline, simulates Ctrl+D
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.NewReader(tt.input)
			output := &bytes.Buffer{}

			r := &REPL{
				input:     input,
				output:    output,
				completer: NewCompleter(),
				history:   NewHistory(),
			}

			err := r.Run()
			if err != nil {
				t.Errorf("Run() returned error: %v", err)
			}
		})
	}
}

func TestREPL_Run_EmptyLines(t *testing.T) {
	// Empty lines should be skipped
	input := strings.NewReader("\n\n\nexit\n")
	output := &bytes.Buffer{}

	r := &REPL{
		input:     input,
		output:    output,
		completer: NewCompleter(),
		history:   NewHistory(),
	}

	err := r.Run()
	if err != nil {
		t.Errorf("Run() returned error: %v", err)
	}

	// Should have multiple prompts
	prompts := strings.Count(output.String(), "gridmatch>")
	if prompts < 4 {
		t.Errorf("expected at least 4 prompts, got %d", prompts)
	}
}

func TestREPL_Run_HistoryAdded(t *testing.T) {
	input := strings.NewReader("command1\ncommand2\nexit\n")
	output := &bytes.Buffer{}

	history := NewHistory()
	r := &REPL{
		input:     input,
		output:    output,
		completer: NewCompleter(),
		history:   history,
	}

	err := r.Run()
	if err != nil {
		t.Errorf("Run() returned error: %v", err)
	}

	// Check history has commands
	if history.Get(0) != "exit" {
		t.Errorf("most recent command = %q, want %q", history.Get(0), "exit")
	}
	if history.Get(1) != "command2" {
		t.Errorf("second most recent = %q, want %q", history.Get(1), "command2")
	}
	if history.Get(2) != "command1" {
		t.Errorf("third most recent = %q, want %q", history.Get(2), "command1")
	}
}

func TestREPL_Run_Command(t *testing.T) {
	input := strings.NewReader("system status\nexit\n")
	output := &bytes.Buffer{}

	var got [][]string
	r := &REPL{
		input:     input,
		output:    output,
		completer: NewCompleter(),
		history:   NewHistory(),
		run: func(args []string) error {
			got = append(got, args)
			return nil
		},
	}

	err := r.Run()
	if err != nil {
		t.Errorf("Run() returned error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("runner called %d times, want 1", len(got))
	}
	if got[0][0] != "system" || got[0][1] != "status" {
		t.Errorf("runner args = %v, want [system status]", got[0])
	}
}

func TestREPL_Run_CommandError(t *testing.T) {
	// A failing command is reported but does not stop the loop.
	input := strings.NewReader("boom\nexit\n")
	output := &bytes.Buffer{}

	r := &REPL{
		input:     input,
		output:    output,
		completer: NewCompleter(),
		history:   NewHistory(),
		run: func(args []string) error {
			return errors.New("unknown command")
		},
	}

	err := r.Run()
	if err != nil {
		t.Errorf("Run() returned error: %v", err)
	}
	if !strings.Contains(output.String(), "Error:") {
		t.Error("command error should be printed to output")
	}
}

func TestREPL_Run_WhitespaceHandling(t *testing.T) {
	// Commands with leading/trailing whitespace
	input := strings.NewReader("  command  \n\texit\t\n")
	output := &bytes.Buffer{}

	history := NewHistory()
	r := &REPL{
		input:     input,
		output:    output,
		completer: NewCompleter(),
		history:   history,
	}

	err := r.Run()
	if err != nil {
		t.Errorf("Run() returned error: %v", err)
	}

	// Whitespace should be trimmed
	if history.Get(0) != "exit" {
		t.Errorf("command not trimmed properly: %q", history.Get(0))
	}
	if history.Get(1) != "command" {
		t.Errorf("command not trimmed properly: %q", history.Get(1))
	}
}
