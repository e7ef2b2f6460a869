// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr    = "127.0.0.1:5080"
	DefaultLocalSocket = "/var/run/gridmatch-server/gridmatch-server.sock"

	DefaultTokenTTL = 24 * time.Hour
	DefaultIssuer   = "gridmatch"

	DefaultCodeLength    = 6
	DefaultCodeRetries   = 8
	DefaultGrace         = 30 * time.Second
	DefaultRetention     = 10 * time.Minute
	DefaultIdle          = time.Hour
	DefaultSweepInterval = 10 * time.Second

	DefaultEventRate   = 10.0
	DefaultEventBurst  = 20
	DefaultEventBuffer = 32
	DefaultHTTPRate    = 20.0
	DefaultHTTPBurst   = 40

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
// Auth.TokenSecret has no default; Verify rejects a config without one.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr: DefaultHTTPAddr,
			},
			Local: LocalConfig{
				Path: DefaultLocalSocket,
			},
		},
		Auth: AuthSection{
			TokenTTL: DefaultTokenTTL,
			Issuer:   DefaultIssuer,
		},
		Lobby: LobbySection{
			CodeLength:    DefaultCodeLength,
			CodeRetries:   DefaultCodeRetries,
			Grace:         DefaultGrace,
			Retention:     DefaultRetention,
			Idle:          DefaultIdle,
			SweepInterval: DefaultSweepInterval,
		},
		Limits: LimitsSection{
			EventRate:   DefaultEventRate,
			EventBurst:  DefaultEventBurst,
			EventBuffer: DefaultEventBuffer,
			HTTPRate:    DefaultHTTPRate,
			HTTPBurst:   DefaultHTTPBurst,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
