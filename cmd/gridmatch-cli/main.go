// Package main provides the entry point for gridmatch-cli.
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/gridmatch-go/internal/cli/command"
	"github.com/yndnr/gridmatch-go/internal/cli/repl"
)

func main() {
	app := command.App()

	// "gridmatch-cli repl" starts interactive mode; every entered line
	// runs through the same command set as single-command mode.
	if len(os.Args) == 2 && os.Args[1] == "repl" {
		r := repl.New(func(args []string) error {
			return app.Run(append([]string{os.Args[0]}, args...))
		})
		if err := r.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
