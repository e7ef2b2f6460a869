// Package config defines the CLI configuration structure.
package config

// CLIConfig is the configuration for gridmatch-cli.
type CLIConfig struct {
	// DefaultServer is the control-plane base URL used when --server
	// is not given.
	DefaultServer string `yaml:"default_server"`

	// DefaultSocket is the management socket path used when --socket
	// is not given.
	DefaultSocket string `yaml:"default_socket"`

	// DefaultOutput selects the output format: table, json, yaml.
	DefaultOutput string `yaml:"default_output"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		DefaultServer: "http://localhost:5080",
		DefaultSocket: "/var/run/gridmatch-server/gridmatch-server.sock",
		DefaultOutput: "table",
	}
}
