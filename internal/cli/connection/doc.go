// Package connection provides connection management for the GridMatch CLI.
//
// This package manages connections to a GridMatch server:
//
//   - http.go: HTTP/HTTPS control-plane client
//   - socket.go: Unix socket management client
package connection
