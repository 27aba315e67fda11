package insights

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
)

func newGroceryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grocery",
		Short: "List ingredients used by this week's meals",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			items, err := app.InsightsService.GroceryList(cmd.Context(), app.CurrentUserID)
			if err != nil {
				return fmt.Errorf("failed to build grocery list: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), items)
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No ingredients logged this week.")
				return nil
			}
			for _, it := range items {
				fmt.Fprintf(out, "  [ ] %s (x%d)\n", it.Name, it.Count)
			}
			return nil
		},
	}
}
