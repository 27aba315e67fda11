package supplement

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
)

func newListCmd() *cobra.Command {
	var pending bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List supplements",
		Long:    `List supplements with today's status and this week's history (Sunday first).`,
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			supplements, err := app.ListSupplementsHandler.Handle(cmd.Context(), queries.ListSupplementsQuery{
				UserID:      app.CurrentUserID,
				OnlyPending: pending,
			})
			if err != nil {
				return fmt.Errorf("failed to list supplements: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), supplements)
			}

			out := cmd.OutOrStdout()
			if len(supplements) == 0 {
				if pending {
					fmt.Fprintln(out, "All supplements taken today.")
				} else {
					fmt.Fprintln(out, "No supplements. Add one with: phoenix supplement add [name]")
				}
				return nil
			}

			for _, s := range supplements {
				check := " "
				if s.TakenToday {
					check = "x"
				}
				fmt.Fprintf(out, "[%s] %-20s %-10s %-9s week %s (%d/7)\n",
					check, s.Name, s.Dosage, s.TimeOfDay, s.History, s.DaysTaken)
				fmt.Fprintf(out, "    ID: %s\n", s.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pending, "pending", "p", false, "only supplements not yet taken today")
	return cmd
}
