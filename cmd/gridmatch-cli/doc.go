// Package main provides the entry point for gridmatch-cli.
//
// The CLI tool provides command-line access to a GridMatch server for:
//
//   - Lobby management (create, join, show, remove)
//   - System administration (status, health, lobbies, gc, drain)
//
// Usage:
//
//	gridmatch-cli [command] [flags]
//	gridmatch-cli lobby create --name alice
//	gridmatch-cli lobby join AB23XY --name bob
//	gridmatch-cli system status --server localhost:5080
//
// The CLI supports both single-command mode and interactive REPL mode
// (gridmatch-cli repl). Lobby commands use the HTTP control plane;
// system lobbies, gc and drain use the local management socket.
package main
