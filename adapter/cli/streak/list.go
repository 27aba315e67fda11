package streak

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "Show every streak with its day count",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			streaks, err := app.InsightsService.Streaks(cmd.Context(), app.CurrentUserID)
			if err != nil {
				return fmt.Errorf("failed to load streaks: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), streaks)
			}

			out := cmd.OutOrStdout()
			if len(streaks) == 0 {
				fmt.Fprintln(out, "No streaks. Start one with: phoenix streak start [name]")
				return nil
			}

			for _, s := range streaks {
				marker := ""
				if s.Milestone {
					marker = "  milestone!"
				}
				fmt.Fprintf(out, "%-20s %4d days  next milestone %d%s\n", s.Name, s.Days, s.NextMilestone, marker)
				fmt.Fprintf(out, "    ID: %s\n", s.TrackerID)
			}
			return nil
		},
	}
}
