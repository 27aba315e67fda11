package routine

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
)

// NewCmd creates the routine command group.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routine",
		Short: "Log exercise and daily routine completion",
	}
	cmd.AddCommand(newLogCmd())
	cmd.AddCommand(newListCmd())
	return cmd
}

func newLogCmd() *cobra.Command {
	var (
		name    string
		percent int
		date    string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log how much of a routine you completed",
		Long: `Log a routine completion percentage. Only a full (100%) routine earns points.

Examples:
  phoenix routine log --percent 100
  phoenix routine log --name stretching --percent 60 --date 2026-03-10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			day, err := app.ParseDate(date)
			if err != nil {
				return err
			}

			result, err := app.LogRoutineHandler.Handle(cmd.Context(), commands.LogRoutineCommand{
				UserID:     app.CurrentUserID,
				Name:       name,
				Date:       day,
				Percentage: percent,
			})
			if err != nil {
				return fmt.Errorf("failed to log routine: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), result)
			}
			if result.Complete {
				fmt.Fprintln(cmd.OutOrStdout(), "Routine complete!")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Routine logged at %d%%.\n", percent)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "routine name (default daily)")
	cmd.Flags().IntVarP(&percent, "percent", "p", 100, "completion percentage (0-100)")
	cmd.Flags().StringVar(&date, "date", "", "day of the routine (default today)")
	return cmd
}

func newListCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List recent routine completions",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			completions, err := app.ListRoutinesHandler.Handle(cmd.Context(), queries.ListRoutinesQuery{
				UserID: app.CurrentUserID,
				Days:   days,
			})
			if err != nil {
				return fmt.Errorf("failed to list routines: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), completions)
			}

			out := cmd.OutOrStdout()
			if len(completions) == 0 {
				fmt.Fprintln(out, "No routines logged.")
				return nil
			}
			for _, c := range completions {
				fmt.Fprintf(out, "%s  %-16s %3d%%\n", c.Date.Format("Mon 2006-01-02"), c.Name, c.Percentage)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "number of days to include")
	return cmd
}
