package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	cl "github.com/Anthonytesla02/AxelTycoon/internal/cli"
	"github.com/Anthonytesla02/AxelTycoon/internal/config"
	"github.com/Anthonytesla02/AxelTycoon/internal/game"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "tycoon",
		Short:        "Axel Tycoon CLI game client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newNewCmd(&apiBase),
		newShowCmd(&apiBase),
		newTurnCmd(&apiBase),
		newGamesCmd(&apiBase),
		newSwitchCmd(&apiBase),
		newDeleteCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func cmdContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 60*time.Second)
}

func newNewCmd(apiBase *string) *cobra.Command {
	var seed string
	cmd := &cobra.Command{
		Use:   "new [player-name]",
		Short: "Start a new game",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerName := ""
			if len(args) == 1 {
				playerName = args[0]
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			rec, err := newClient(apiBase).NewGame(ctx, playerName, seed)
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{GameID: rec.ID, PlayerName: rec.PlayerName}); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("New game for %s (seed %s). Session saved.", rec.PlayerName, rec.Seed))
			renderGame(rec)
			return nil
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "fixed seed for a reproducible market")
	return cmd
}

func newShowCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("no active game, run `tycoon new`: %w", err)
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			rec, err := newClient(apiBase).Game(ctx, sess.GameID)
			if err != nil {
				return err
			}
			renderGame(rec)
			return nil
		},
	}
}

func newTurnCmd(apiBase *string) *cobra.Command {
	var target string
	var amount float64
	cmd := &cobra.Command{
		Use:   "turn <action>",
		Short: "Play one turn (invest, negotiate, influence, expose, legalShield, philanthropy)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("no active game, run `tycoon new`: %w", err)
			}
			action := game.Action{
				Type:   game.ActionType(strings.TrimSpace(args[0])),
				Target: strings.TrimSpace(target),
				Amount: amount,
			}
			if err := game.ValidateAction(action); err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Turn(ctx, sess.GameID, action)
			if err != nil {
				return err
			}
			renderReport(out.Report)
			renderGame(out.Game)
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "asset id or rival index the action applies to")
	cmd.Flags().Float64Var(&amount, "amount", 0, "cash amount for the action")
	return cmd
}

func newGamesCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List saved games",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			games, err := newClient(apiBase).Games(ctx)
			if err != nil {
				return err
			}
			renderGamesList(games)
			return nil
		},
	}
}

func newSwitchCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "switch <game-id>",
		Short: "Make another saved game the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			rec, err := newClient(apiBase).Game(ctx, args[0])
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{GameID: rec.ID, PlayerName: rec.PlayerName}); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Switched to %s's game (turn %d).", rec.PlayerName, rec.Turn))
			return nil
		},
	}
}

func newDeleteCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [game-id]",
		Short: "Delete a saved game (defaults to the active one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			} else {
				sess, err := cl.LoadSession()
				if err != nil {
					return fmt.Errorf("no active game to delete: %w", err)
				}
				id = sess.GameID
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			if err := newClient(apiBase).Delete(ctx, id); err != nil {
				return err
			}
			if sess, err := cl.LoadSession(); err == nil && sess.GameID == id {
				_ = cl.ClearSession()
			}
			printSuccess("Game deleted.")
			return nil
		},
	}
}
