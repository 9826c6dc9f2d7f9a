package cli

import (
	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "In-game commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGamePlaceCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Start the game (all players must be ready)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionDetail

			if err := client.Post("/api/v1/sessions/"+args[0]+"/start", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamePlaceCmd() *cobra.Command {
	var handIndex, x, y int

	cmd := &cobra.Command{
		Use:   "place <id>",
		Short: "Place a tile from your hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{
				"hand_index": handIndex,
				"x":          x,
				"y":          y,
			}
			var result PlaceResult

			if err := client.Post("/api/v1/sessions/"+args[0]+"/place", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&handIndex, "tile", 0, "Hand index of the tile to place")
	cmd.Flags().IntVarP(&x, "x", "x", 0, "Board column")
	cmd.Flags().IntVarP(&y, "y", "y", 0, "Board row")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}
