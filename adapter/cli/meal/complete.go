package meal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
)

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "complete [meal-id]",
		Short:   "Mark a planned meal as eaten",
		Aliases: []string{"done"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			mealID, err := cli.ParseID("meal", args[0])
			if err != nil {
				return err
			}

			err = app.CompleteMealHandler.Handle(cmd.Context(), commands.CompleteMealCommand{
				MealID: mealID,
				UserID: app.CurrentUserID,
			})
			if err != nil {
				return fmt.Errorf("failed to complete meal: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Meal marked as eaten.")
			return nil
		},
	}
}
