// Package command provides CLI command definitions for gridmatch-cli.
//
// It uses urfave/cli/v2 for command parsing and supports both
// single-command mode and interactive REPL mode.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/gridmatch-go/internal/cli/connection"
	"github.com/yndnr/gridmatch-go/internal/infra/tlsroots"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "gridmatch-cli",
		Usage:   "GridMatch command-line management tool",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			LobbyCommand(),
			SystemCommand(),
		},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "GridMatch server address (e.g., localhost:5080)",
			EnvVars: []string{"GRIDMATCH_SERVER"},
			Value:   "localhost:5080",
		},
		&cli.StringFlag{
			Name:    "socket",
			Usage:   "Management socket path for local commands",
			EnvVars: []string{"GRIDMATCH_SOCKET"},
			Value:   "/var/run/gridmatch-server/gridmatch-server.sock",
		},
		&cli.StringFlag{
			Name:    "ca-cert",
			Usage:   "PEM file with additional trusted CA certificates",
			EnvVars: []string{"GRIDMATCH_CA_CERT"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable verbose output",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	// Server connection
	Server string
	Socket string
	CACert string

	// Output format
	Output string // table, json, yaml
	Wide   bool

	// Other
	Verbose bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Server:  c.String("server"),
		Socket:  c.String("socket"),
		CACert:  c.String("ca-cert"),
		Output:  c.String("output"),
		Wide:    c.Bool("wide"),
		Verbose: c.Bool("verbose"),
	}
}

// EnsureConnected returns an HTTP client for the configured server.
func EnsureConnected(c *cli.Context) (*connection.HTTPClient, error) {
	flags := ParseGlobalFlags(c)

	if flags.CACert != "" {
		pool, err := tlsroots.NewPool()
		if err != nil {
			return nil, fmt.Errorf("load system roots: %w", err)
		}
		if err := pool.AddCertFile(flags.CACert); err != nil {
			return nil, err
		}
		return connection.NewHTTPClientWithTLS(flags.Server, pool.TLSConfig()), nil
	}

	return connection.NewHTTPClient(flags.Server), nil
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

// truncateID shortens long identifiers (session tokens) for table output.
func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:13] + "..."
}
