// Package command provides CLI command definitions for GridMatch.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags
//   - lobby.go: Lobby subcommand group (create, join, show, remove)
//   - system.go: System subcommand group (status, health, lobbies, gc, drain)
//
// Lobby commands talk to the HTTP control plane; the system lobbies,
// gc and drain commands use the local management socket.
//
// Commands follow a consistent pattern of parsing flags, calling the
// server, and formatting output.
package command
