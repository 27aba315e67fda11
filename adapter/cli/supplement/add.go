package supplement

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

func newAddCmd() *cobra.Command {
	var (
		dosage    string
		timeOfDay string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a supplement",
		Long: `Add a supplement to take every day.

Examples:
  phoenix supplement add "Vitamin D" --dosage "1000 IU" --time morning
  phoenix supplement add Magnesium --time evening`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			result, err := app.AddSupplementHandler.Handle(cmd.Context(), commands.AddSupplementCommand{
				UserID:    app.CurrentUserID,
				Name:      args[0],
				Dosage:    dosage,
				TimeOfDay: domain.TimeOfDay(timeOfDay),
			})
			if err != nil {
				return fmt.Errorf("failed to add supplement: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added supplement: %s\n  ID: %s\n", args[0], result.SupplementID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dosage, "dosage", "d", "", "dose, e.g. \"500 mg\"")
	cmd.Flags().StringVarP(&timeOfDay, "time", "t", string(domain.TimeMorning), "time of day (morning, afternoon, evening)")
	return cmd
}
