package meal

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
)

func newListCmd() *cobra.Command {
	var (
		days     int
		mealType string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent meals",
		Long: `List meals from the last few days, oldest first.

Examples:
  phoenix meal list
  phoenix meal list --days 7 --type breakfast`,
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			meals, err := app.ListMealsHandler.Handle(cmd.Context(), queries.ListMealsQuery{
				UserID: app.CurrentUserID,
				Days:   days,
				Type:   mealType,
			})
			if err != nil {
				return fmt.Errorf("failed to list meals: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), meals)
			}

			out := cmd.OutOrStdout()
			if len(meals) == 0 {
				fmt.Fprintln(out, "No meals logged.")
				return nil
			}

			for _, m := range meals {
				status := "eaten"
				if !m.Completed {
					status = "planned"
				}
				fmt.Fprintf(out, "%s  %-9s %-24s %4d kcal %3dg protein  [%s]\n",
					m.EatenAt.Format("Mon 01-02 15:04"), m.Type, m.Name, m.Calories, m.Protein, status)
				if len(m.Ingredients) > 0 {
					fmt.Fprintf(out, "    %s\n", strings.Join(m.Ingredients, ", "))
				}
				fmt.Fprintf(out, "    ID: %s\n", m.ID)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 1, "number of days to include, today counts as one")
	cmd.Flags().StringVarP(&mealType, "type", "t", "", "only list this meal type")
	return cmd
}
