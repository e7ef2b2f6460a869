// Package repl provides interactive mode for the GridMatch CLI.
//
// This package implements the Read-Eval-Print Loop for interactive sessions:
//
//   - repl.go: Main REPL loop and command dispatch
//   - completer.go: Tab completion for commands
//   - history.go: Command history persistence (~/.gridmatch/history)
//
// Entered lines are split into fields and dispatched through the
// Runner supplied by the caller, so the REPL shares the same command
// set as single-command mode.
package repl
