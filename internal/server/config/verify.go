// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/yndnr/gridmatch-go/pkg/gamecode"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyAuth(&cfg.Auth); err != nil {
		return err
	}
	if err := verifyLobby(&cfg.Lobby); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("server.http.addr is required")
	}

	// TLS cert and key come as a pair
	if (cfg.HTTP.TLSCertFile == "") != (cfg.HTTP.TLSKeyFile == "") {
		return errors.New("server.http.tls_cert_file and tls_key_file must be set together")
	}
	if cfg.HTTP.TLSCertFile != "" {
		if _, err := os.Stat(cfg.HTTP.TLSCertFile); err != nil {
			return fmt.Errorf("server.http.tls_cert_file: %w", err)
		}
		if _, err := os.Stat(cfg.HTTP.TLSKeyFile); err != nil {
			return fmt.Errorf("server.http.tls_key_file: %w", err)
		}
	}
	return nil
}

func verifyAuth(cfg *AuthSection) error {
	if cfg.TokenSecret == "" {
		return errors.New("auth.token_secret is required")
	}
	if len(cfg.TokenSecret) < 16 {
		return errors.New("auth.token_secret must be at least 16 characters")
	}
	if cfg.TokenTTL < 0 {
		return errors.New("auth.token_ttl must not be negative")
	}
	return nil
}

func verifyLobby(cfg *LobbySection) error {
	if cfg.CodeLength < gamecode.MinLength || cfg.CodeLength > gamecode.MaxLength {
		return fmt.Errorf("lobby.code_length must be %d..%d, got %d",
			gamecode.MinLength, gamecode.MaxLength, cfg.CodeLength)
	}
	if cfg.CodeRetries < 1 {
		return errors.New("lobby.code_retries must be at least 1")
	}
	if cfg.Grace < 0 {
		return errors.New("lobby.grace must not be negative")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug/info/warn/error", cfg.Level)
	}
	switch cfg.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format %q is not one of json/text", cfg.Format)
	}
	return nil
}
