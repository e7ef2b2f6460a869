// Package config provides CLI configuration for GridMatch.
//
// This package defines CLI-specific configuration:
//
//   - spec.go: CLIConfig struct (~/.gridmatch/cli.yaml)
//   - loader.go: YAML load/save
//
// Configuration includes:
//
//   - Default server and management socket
//   - Output format preference
package config
