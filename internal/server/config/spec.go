// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for gridmatch-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Auth   AuthSection   `koanf:"auth"`
	Lobby  LobbySection  `koanf:"lobby"`
	Limits LimitsSection `koanf:"limits"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP  HTTPConfig  `koanf:"http"`
	Local LocalConfig `koanf:"local"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr        string `koanf:"addr"`
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`
}

// LocalConfig configures the local management socket.
type LocalConfig struct {
	Path string `koanf:"path"`
}

// AuthSection configures session token signing.
type AuthSection struct {
	// TokenSecret is the signing secret for session tokens. Required.
	TokenSecret string `koanf:"token_secret"`

	// TokenTTL is the session token lifetime.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// Issuer is the "iss" claim on issued tokens.
	Issuer string `koanf:"issuer"`
}

// LobbySection configures lobby behavior.
type LobbySection struct {
	// CodeLength is the join code length.
	CodeLength int `koanf:"code_length"`

	// CodeRetries is the number of fresh codes tried on collision.
	CodeRetries int `koanf:"code_retries"`

	// Grace is the disconnect grace period before abandonment.
	// Zero abandons immediately.
	Grace time.Duration `koanf:"grace"`

	// Retention is how long finished lobbies are kept for a rematch.
	Retention time.Duration `koanf:"retention"`

	// Idle is how long an empty waiting lobby survives.
	Idle time.Duration `koanf:"idle"`

	// SweepInterval is the lifecycle sweeper period.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// LimitsSection configures rate limits and buffers.
type LimitsSection struct {
	// EventRate is the per-session sustained events-per-second budget.
	EventRate float64 `koanf:"event_rate"`

	// EventBurst is the per-session burst allowance.
	EventBurst int `koanf:"event_burst"`

	// EventBuffer is the per-session outbound event buffer.
	EventBuffer int `koanf:"event_buffer"`

	// HTTPRate is the per-client HTTP requests-per-second budget.
	HTTPRate float64 `koanf:"http_rate"`

	// HTTPBurst is the per-client HTTP burst allowance.
	HTTPBurst int `koanf:"http_burst"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
