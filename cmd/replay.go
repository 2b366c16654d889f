package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"citadels-engine/internal/engine"
	"citadels-engine/internal/engine/abilities"
	"citadels-engine/internal/store"
)

var replayCmd = &cobra.Command{
	Use:   "replay [game_id]",
	Short: "Replay a stored game and print its scores",
	Long: `Reads the action log of a stored game, replays it through the rules
engine and prints the round, each player's score and the latest log lines.
Without a game id, lists the stored games.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		tail, _ := cmd.Flags().GetInt("logs")
		ctx := commandContext(cmd)

		st, err := store.Open(ctx, dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			games, err := st.ListGames(ctx)
			if err != nil {
				return err
			}
			for _, g := range games {
				fmt.Fprintf(out, "%s  %s  %d players  %d actions\n",
					g.ID, g.CreatedAt.Format("2006-01-02 15:04"), g.Players, g.Actions)
			}
			return nil
		}

		g, n, err := st.Restore(ctx, args[0], abilities.NewRegistry())
		if err != nil {
			return err
		}
		printGame(out, g, n, tail)
		return nil
	},
}

func printGame(out io.Writer, g *engine.Game, actions, tail int) {
	fmt.Fprintf(out, "Replayed %d actions.\n", actions)
	fmt.Fprintf(out, "Round %d, %s\n", g.Round, g.Turn.Phase())
	for _, p := range g.Players {
		fmt.Fprintf(out, "  %-16s public %3d  total %3d  gold %2d  city %d\n",
			p.Name, g.PublicScore(p), g.TotalScore(p), p.Gold, len(p.City))
	}
	logs := g.Logs
	if tail >= 0 && len(logs) > tail {
		logs = logs[len(logs)-tail:]
	}
	for _, l := range logs {
		fmt.Fprintln(out, "  "+l)
	}
}

func init() {
	replayCmd.Flags().String("db", "citadels.db", "SQLite database path")
	replayCmd.Flags().Int("logs", 10, "number of log lines to print")
	rootCmd.AddCommand(replayCmd)
}
