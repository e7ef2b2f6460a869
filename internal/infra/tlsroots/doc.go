// Package tlsroots provides TLS certificate management for GridMatch.
//
// This package handles TLS certificate loading and management:
//
//   - roots.go: System certificates + custom CA loading (used by the
//     CLI's --ca-cert flag)
//   - watcher.go: Server certificate hot-reload via fsnotify
//
// Features:
//
//   - System certificate pool integration
//   - Custom CA certificate support
//   - Automatic certificate reload on file changes
package tlsroots
