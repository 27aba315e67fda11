package supplement

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
)

func newResetCmd() *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Roll supplements over to a new day or week",
		Long: `Clear every taken-today flag (--scope day) or every weekly history
(--scope week). The worker runs both on a schedule; this command runs them by hand.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			s := commands.ResetScope(scope)
			if s != commands.ResetDay && s != commands.ResetWeek {
				return fmt.Errorf("invalid scope %q: use day or week", scope)
			}

			result, err := app.ResetSupplementsHandler.Handle(cmd.Context(), commands.ResetSupplementsCommand{Scope: s})
			if err != nil {
				return fmt.Errorf("failed to reset supplements: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Reset %d supplement(s) for the new %s.\n", result.Reset, s)
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", string(commands.ResetDay), "day or week")
	return cmd
}
