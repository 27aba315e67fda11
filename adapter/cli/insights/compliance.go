package insights

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
)

func newComplianceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compliance",
		Short: "Show supplement compliance this week",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			rows, err := app.InsightsService.Compliance(cmd.Context(), app.CurrentUserID)
			if err != nil {
				return fmt.Errorf("failed to compute compliance: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), rows)
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No supplements.")
				return nil
			}
			for _, r := range rows {
				today := ""
				if r.TakenToday {
					today = "  taken today"
				}
				fmt.Fprintf(out, "%-20s %5.1f%%%s\n", r.Name, r.Percent, today)
			}
			return nil
		},
	}
}
