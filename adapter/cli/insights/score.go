package insights

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Show today's Rebirth Score",
		Long: `The Rebirth Score (0-100) sums four parts worth up to 25 each:
meals logged today, active streaks, supplements taken today and goals
completed in the last seven days.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			score, err := app.InsightsService.Score(cmd.Context(), app.CurrentUserID)
			if err != nil {
				return fmt.Errorf("failed to compute score: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), score)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rebirth Score: %d/100\n\n", score.Total)
			printPart(out, "Meals", score.Meal)
			printPart(out, "Streaks", score.Streak)
			printPart(out, "Supplements", score.Supplement)
			printPart(out, "Goals", score.Goal)
			return nil
		},
	}
}

func printPart(w io.Writer, label string, value float64) {
	fmt.Fprintf(w, "  %-12s %s %5.1f/25\n", label, bar(value, 25, 20), value)
}

func bar(value, full float64, width int) string {
	filled := 0
	if full > 0 {
		filled = min(max(int(value/full*float64(width)), 0), width)
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
