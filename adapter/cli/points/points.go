package points

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
)

// NewCmd creates the points command.
func NewCmd() *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "points",
		Short: "Show your Phoenix Points",
		Long: `Show your Phoenix Points balance and the most recent awards.

Points: meal 5, supplement 2, streak check-in 10, journal 15, goal 20, full routine 10.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			ledger, err := app.GetPointsHandler.Handle(cmd.Context(), queries.GetPointsQuery{
				UserID: app.CurrentUserID,
				Recent: recent,
			})
			if err != nil {
				return fmt.Errorf("failed to load points: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), ledger)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Phoenix Points: %d\n", ledger.Total)
			for _, a := range ledger.Recent {
				fmt.Fprintf(out, "  +%-3d %-18s %s\n", a.Amount, a.Reason, a.AwardedAt.Format("Mon 01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&recent, "recent", "n", 10, "number of recent awards to show")
	return cmd
}
