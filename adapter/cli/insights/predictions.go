package insights

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
)

func newPredictionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "predictions",
		Short:   "Show tomorrow's outlook",
		Aliases: []string{"predict"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			predictions, err := app.InsightsService.Predictions(cmd.Context(), app.CurrentUserID)
			if err != nil {
				return fmt.Errorf("failed to compute predictions: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), predictions)
			}

			out := cmd.OutOrStdout()
			if len(predictions) == 0 {
				fmt.Fprintln(out, "Not enough data for predictions.")
				return nil
			}
			for _, p := range predictions {
				fmt.Fprintf(out, "%3d%%  %s\n", p.Probability, p.Title)
				if len(p.Factors) > 0 {
					fmt.Fprintf(out, "      %s\n", strings.Join(p.Factors, "; "))
				}
			}
			return nil
		},
	}
}
