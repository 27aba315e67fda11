package insights

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/insights/domain"
)

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "Show patterns found in the last 30 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			insights, err := app.InsightsService.Patterns(cmd.Context(), app.CurrentUserID)
			if err != nil {
				return fmt.Errorf("failed to detect patterns: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), insights)
			}

			out := cmd.OutOrStdout()
			if len(insights) == 0 {
				fmt.Fprintln(out, "No patterns yet. Keep tracking for a few weeks.")
				return nil
			}
			for _, in := range insights {
				fmt.Fprintf(out, "%s %s (%.0f%%)\n", icon(in.Type), in.Title, in.Strength*100)
				fmt.Fprintf(out, "    %s\n", in.Description)
			}
			return nil
		},
	}
}

func icon(t domain.InsightType) string {
	switch t {
	case domain.InsightWarning:
		return "!"
	case domain.InsightSuccess:
		return "+"
	default:
		return "*"
	}
}
