// Package localserver provides the local management server.
//
// It listens on a Unix Domain Socket (UDS), providing local management
// access gated by file system permissions instead of tokens.
package localserver

import (
	"bufio"
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/yndnr/gridmatch-go/internal/telemetry/logger"
)

// Server represents the local management server.
type Server struct {
	listener net.Listener
	path     string
	handler  *Handler
	log      logger.Logger
	running  atomic.Bool
	wg       sync.WaitGroup
}

// New creates a new local server.
func New(socketPath string, handler *Handler, log logger.Logger) *Server {
	return &Server{
		path:    socketPath,
		handler: handler,
		log:     log,
	}
}

// ListenAndServe starts the local server.
func (s *Server) ListenAndServe() error {
	// A stale socket from an unclean exit blocks the bind.
	if err := removeStaleSocket(s.path); err != nil {
		return err
	}

	var err error
	s.listener, err = net.Listen("unix", s.path)
	if err != nil {
		return err
	}

	s.running.Store(true)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Check if server is shutting down
			if !s.running.Load() {
				return nil
			}
			// Check if listener was closed
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		// Track goroutine for graceful shutdown
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

// Shutdown gracefully shuts down the server.
//
// This method:
//  1. Sets running flag to false
//  2. Closes the listener to stop accepting new connections
//  3. Waits for all active connections to finish (respects context timeout)
func (s *Server) Shutdown(ctx context.Context) error {
	// Mark server as shutting down
	s.running.Store(false)

	// Close listener to stop accepting new connections
	var closeErr error
	if s.listener != nil {
		closeErr = s.listener.Close()
	}

	// Wait for all goroutines to finish
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		// All goroutines finished
		return closeErr
	case <-ctx.Done():
		// Context timeout - return context error
		return ctx.Err()
	}
}

// handleConnection reads commands line by line and writes one JSON
// response per command. Lines have the form "cmd arg1 arg2".
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		cmd, args := fields[0], fields[1:]
		if err := s.handler.Execute(conn, cmd, args); err != nil {
			s.log.Warn("management command failed", "cmd", cmd, "error", err)
			return
		}
	}
}

// removeStaleSocket deletes a leftover socket file if no server is
// listening behind it.
func removeStaleSocket(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	conn, err := net.Dial("unix", path)
	if err == nil {
		conn.Close()
		return errors.New("socket already in use: " + path)
	}

	return os.Remove(path)
}
