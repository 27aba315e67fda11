package supplement

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [supplement-id]",
		Short:   "Stop tracking a supplement",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			supplementID, err := cli.ParseID("supplement", args[0])
			if err != nil {
				return err
			}

			err = app.DeleteSupplementHandler.Handle(cmd.Context(), commands.DeleteSupplementCommand{
				SupplementID: supplementID,
				UserID:       app.CurrentUserID,
			})
			if err != nil {
				return fmt.Errorf("failed to delete supplement: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Supplement deleted.")
			return nil
		},
	}
}
