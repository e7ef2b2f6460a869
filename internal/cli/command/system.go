// Package command provides CLI command definitions for gridmatch-cli.
package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/gridmatch-go/internal/cli/connection"
	"github.com/yndnr/gridmatch-go/internal/cli/output"
)

// SystemCommand returns the system subcommand group.
func SystemCommand() *cli.Command {
	return &cli.Command{
		Name:    "system",
		Aliases: []string{"sys"},
		Usage:   "System management commands",
		Subcommands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show server status summary",
				Action: systemStatus,
			},
			{
				Name:   "health",
				Usage:  "Check server health",
				Action: systemHealth,
			},
			{
				Name:   "lobbies",
				Usage:  "List all lobbies via the management socket",
				Action: systemLobbies,
			},
			{
				Name:   "gc",
				Usage:  "Trigger a lobby sweep via the management socket",
				Action: systemGC,
			},
			{
				Name:   "drain",
				Usage:  "Mark the server as draining (readiness probe fails)",
				Action: systemDrain,
			},
		},
	}
}

func systemStatus(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/v1/status")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		Version     string `json:"version"`
		Commit      string `json:"commit"`
		Uptime      string `json:"uptime"`
		Lobbies     int    `json:"lobbies"`
		Sessions    int    `json:"sessions"`
		Connections int    `json:"connections"`
	}
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	switch output.Format(flags.Output) {
	case output.FormatJSON:
		return (&output.JSONFormatter{}).Format(os.Stdout, result)
	case output.FormatYAML:
		return (&output.YAMLFormatter{}).Format(os.Stdout, result)
	default:
		fmt.Printf("Server Status\n")
		fmt.Printf("=============\n\n")
		fmt.Printf("Version:     %s\n", result.Version)
		fmt.Printf("Commit:      %s\n", result.Commit)
		fmt.Printf("Uptime:      %s\n", result.Uptime)
		fmt.Printf("Lobbies:     %d\n", result.Lobbies)
		fmt.Printf("Sessions:    %d\n", result.Sessions)
		fmt.Printf("Connections: %d\n", result.Connections)
		return nil
	}
}

func systemHealth(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/health")
	if err != nil {
		PrintError("Health check failed: %v", err)
		return fmt.Errorf("server unhealthy")
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	switch output.Format(flags.Output) {
	case output.FormatJSON:
		return (&output.JSONFormatter{}).Format(os.Stdout, result)
	default:
		if result.Status == "healthy" {
			fmt.Printf("✓ Server is healthy\n")
			fmt.Printf("  Target: %s\n", client.BaseURL())
		} else {
			fmt.Printf("✗ Server is unhealthy: %s\n", result.Status)
		}
		return nil
	}
}

// socketResult mirrors the management socket's response line.
type socketResult struct {
	OK    bool            `json:"ok"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// socketExec sends one command over the management socket and decodes
// the JSON response line.
func socketExec(c *cli.Context, cmd string) (*socketResult, error) {
	flags := ParseGlobalFlags(c)

	client := connection.NewSocketClient(flags.Socket)
	defer client.Close()

	line, err := client.Execute(cmd)
	if err != nil {
		return nil, fmt.Errorf("management socket %s: %w", flags.Socket, err)
	}

	var result socketResult
	if err := json.Unmarshal([]byte(line), &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("command failed: %s", result.Error)
	}
	return &result, nil
}

func systemLobbies(c *cli.Context) error {
	result, err := socketExec(c, "lobbies")
	if err != nil {
		return err
	}

	var lobbies []struct {
		Code    string `json:"code"`
		Phase   string `json:"phase"`
		Players int    `json:"players"`
		Moves   int    `json:"moves"`
	}
	if err := json.Unmarshal(result.Data, &lobbies); err != nil {
		return fmt.Errorf("parse lobby list: %w", err)
	}

	flags := ParseGlobalFlags(c)
	switch output.Format(flags.Output) {
	case output.FormatJSON:
		return (&output.JSONFormatter{}).Format(os.Stdout, lobbies)
	case output.FormatYAML:
		return (&output.YAMLFormatter{}).Format(os.Stdout, lobbies)
	default:
		if len(lobbies) == 0 {
			fmt.Println("No lobbies")
			return nil
		}
		fmt.Printf("%-8s %-20s %-8s %s\n", "CODE", "PHASE", "PLAYERS", "MOVES")
		for _, l := range lobbies {
			fmt.Printf("%-8s %-20s %-8d %d\n", l.Code, l.Phase, l.Players, l.Moves)
		}
		return nil
	}
}

func systemGC(c *cli.Context) error {
	result, err := socketExec(c, "gc")
	if err != nil {
		return err
	}

	var data struct {
		Removed int `json:"removed"`
	}
	if err := json.Unmarshal(result.Data, &data); err != nil {
		return fmt.Errorf("parse sweep result: %w", err)
	}

	fmt.Printf("Sweep completed: %d lobbies removed\n", data.Removed)
	return nil
}

func systemDrain(c *cli.Context) error {
	if _, err := socketExec(c, "drain"); err != nil {
		return err
	}

	fmt.Println("Server marked as draining; readiness probe now fails")
	return nil
}
