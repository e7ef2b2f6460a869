// Package command provides CLI command definitions for gridmatch-cli.
package command

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/gridmatch-go/internal/cli/connection"
	"github.com/yndnr/gridmatch-go/internal/cli/output"
	"github.com/yndnr/gridmatch-go/internal/core/domain"
)

// lobbyView mirrors the server's lobby response bodies.
type lobbyView struct {
	Code      string            `json:"code"`
	Token     string            `json:"token"`
	SessionID string            `json:"session_id"`
	Mark      domain.Mark       `json:"mark"`
	Started   bool              `json:"started"`
	Rejoined  bool              `json:"rejoined"`
	State     domain.LobbyState `json:"state"`
}

// lobbyStateView mirrors GET /v1/lobbies/{code}.
type lobbyStateView struct {
	State domain.LobbyState `json:"state"`
}

// removeView mirrors DELETE /v1/lobbies/{code}.
type removeView struct {
	Removed bool `json:"removed"`
}

// LobbyCommand returns the lobby subcommand group.
func LobbyCommand() *cli.Command {
	return &cli.Command{
		Name:    "lobby",
		Aliases: []string{"l"},
		Usage:   "Lobby management commands",
		Subcommands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create a new lobby and claim the first seat",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Display name for the first player",
						Required: true,
					},
				},
				Action: lobbyCreate,
			},
			{
				Name:      "join",
				Usage:     "Join an existing lobby by code",
				ArgsUsage: "CODE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Display name for the joining player",
						Required: true,
					},
				},
				Action: lobbyJoin,
			},
			{
				Name:      "show",
				Usage:     "Show the public state of a lobby",
				ArgsUsage: "CODE",
				Action:    lobbyShow,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a lobby and disconnect its players",
				ArgsUsage: "CODE",
				Action:    lobbyRemove,
			},
		},
	}
}

func lobbyCreate(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	body := map[string]string{"player_name": c.String("name")}
	resp, err := client.Post(ctx, "/v1/lobbies", body)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result lobbyView
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
		fmt.Printf("Lobby created\n\n")
		fmt.Printf("Code:    %s\n", result.Code)
		fmt.Printf("Mark:    %s\n", result.Mark)
		fmt.Printf("Session: %s\n", truncateID(result.SessionID))
		fmt.Printf("Token:   %s\n\n", result.Token)
		fmt.Printf("Share the code with your opponent: gridmatch-cli lobby join %s --name NAME\n", result.Code)
		return nil
	}
}

func lobbyJoin(c *cli.Context) error {
	code := strings.ToUpper(c.Args().First())
	if code == "" {
		return fmt.Errorf("lobby code required")
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	body := map[string]string{"player_name": c.String("name")}
	resp, err := client.Post(ctx, "/v1/lobbies/"+code+"/join", body)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result lobbyView
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
		if result.Rejoined {
			fmt.Printf("Rejoined lobby %s\n\n", result.Code)
		} else {
			fmt.Printf("Joined lobby %s\n\n", result.Code)
		}
		fmt.Printf("Mark:    %s\n", result.Mark)
		fmt.Printf("Session: %s\n", truncateID(result.SessionID))
		fmt.Printf("Token:   %s\n", result.Token)
		if result.Started {
			fmt.Printf("\nGame started. %s moves first.\n", result.State.Turn)
		}
		return nil
	}
}

func lobbyShow(c *cli.Context) error {
	code := strings.ToUpper(c.Args().First())
	if code == "" {
		return fmt.Errorf("lobby code required")
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/v1/lobbies/"+code)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result lobbyStateView
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	switch output.Format(flags.Output) {
	case output.FormatJSON:
		return (&output.JSONFormatter{}).Format(os.Stdout, result.State)
	case output.FormatYAML:
		return (&output.YAMLFormatter{}).Format(os.Stdout, result.State)
	default:
		printState(result.State)
		return nil
	}
}

func lobbyRemove(c *cli.Context) error {
	code := strings.ToUpper(c.Args().First())
	if code == "" {
		return fmt.Errorf("lobby code required")
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Delete(ctx, "/v1/lobbies/"+code)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result removeView
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	if result.Removed {
		fmt.Printf("Lobby %s removed\n", code)
	} else {
		fmt.Printf("Lobby %s was already gone\n", code)
	}
	return nil
}

// printState renders a lobby snapshot as text, including the board grid.
func printState(state domain.LobbyState) {
	fmt.Printf("Lobby %s\n", state.Code)
	fmt.Printf("Phase: %s\n", state.Phase)

	for _, p := range state.Players {
		status := "connected"
		if !p.Connected {
			status = "disconnected"
		}
		fmt.Printf("  %s  %-20s %s\n", p.Mark, p.Name, status)
	}

	fmt.Println()
	printBoard(state.Board)

	switch {
	case state.Result.Kind == domain.ResultWin:
		fmt.Printf("\nResult: %s wins\n", state.Result.Winner)
	case state.Result.Kind == domain.ResultDraw:
		fmt.Printf("\nResult: draw\n")
	case state.Result.Kind == domain.ResultAbandoned:
		fmt.Printf("\nResult: abandoned\n")
	case state.Phase == domain.InProgress:
		fmt.Printf("\nTurn: %s (move %d)\n", state.Turn, state.Moves+1)
	}
}

// printBoard draws the 3x3 grid with cell numbers on empty cells.
func printBoard(board domain.Board) {
	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			pos := row*3 + col
			if board[pos] == domain.Empty {
				cells[col] = fmt.Sprintf("%d", pos)
			} else {
				cells[col] = board[pos].String()
			}
		}
		fmt.Printf(" %s | %s | %s\n", cells[0], cells[1], cells[2])
		if row < 2 {
			fmt.Println("---+---+---")
		}
	}
}
