package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game operations",
	}

	cmd.AddCommand(newGameNewCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGamePlaceCmd())
	cmd.AddCommand(newGameTeardownCmd())

	return cmd
}

func newGameNewCmd() *cobra.Command {
	var (
		boardSize  int
		bombCount  int
		pieceCount int
		intervalMS int
		seed       uint64
		seeded     bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{}
			if boardSize != 0 {
				body["board_size"] = boardSize
			}
			if bombCount != 0 {
				body["bomb_count"] = bombCount
			}
			if pieceCount != 0 {
				body["piece_count"] = pieceCount
			}
			if intervalMS != 0 {
				body["detonation_interval_ms"] = intervalMS
			}
			if seeded {
				body["seed"] = seed
			}

			var result GameState
			if err := client.Post("/api/v1/games", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&boardSize, "size", 0, "Board size (default 10)")
	cmd.Flags().IntVar(&bombCount, "bombs", 0, "Number of bombs (default 15)")
	cmd.Flags().IntVar(&pieceCount, "pieces", 0, "Number of pieces (default 20)")
	cmd.Flags().IntVar(&intervalMS, "interval-ms", 0, "Detonation interval in milliseconds (default 10000)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible game")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		seeded = cmd.Flags().Changed("seed")
	}

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []GameSummary
			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the current state of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState
			if err := client.Get("/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamePlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <id> <piece-id> <x> <y>",
		Short: "Place a piece on a cell",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid x coordinate: %s", args[2])
			}
			y, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("invalid y coordinate: %s", args[3])
			}

			body := map[string]any{
				"piece_id": args[1],
				"x":        x,
				"y":        y,
			}

			var result PlaceResult
			if err := client.Post("/api/v1/games/"+args[0]+"/place", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameTeardownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teardown <id>",
		Short: "Cancel a game's timer and release it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/games/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game torn down")
			return nil
		},
	}
}
