package supplement

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

func newTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take [supplement-id]",
		Short: "Record today's dose",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			supplementID, err := cli.ParseID("supplement", args[0])
			if err != nil {
				return err
			}

			result, err := app.TakeSupplementHandler.Handle(cmd.Context(), commands.TakeSupplementCommand{
				SupplementID: supplementID,
				UserID:       app.CurrentUserID,
			})
			if errors.Is(err, domain.ErrSupplementAlreadyTaken) {
				fmt.Fprintln(cmd.OutOrStdout(), "Already taken today.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to take supplement: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Took %s (%d/7 days this week)\n", result.Name, result.DaysTaken)
			return nil
		},
	}
}
