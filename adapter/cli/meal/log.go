package meal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

func newLogCmd() *cobra.Command {
	var (
		mealType    string
		calories    int
		protein     int
		carbs       int
		fats        int
		ingredients string
		at          string
		planned     bool
	)

	cmd := &cobra.Command{
		Use:   "log [name]",
		Short: "Log a meal",
		Long: `Log a meal you ate, or plan one with --planned.

Examples:
  phoenix meal log "Oatmeal" --type breakfast --calories 350 --protein 12
  phoenix meal log "Chicken salad" --type lunch --ingredients "chicken, lettuce, tomato"
  phoenix meal log "Stir fry" --type dinner --at "2026-03-11 19:30" --planned`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			eatenAt, err := app.ParseDate(at)
			if err != nil {
				return err
			}

			result, err := app.LogMealHandler.Handle(cmd.Context(), commands.LogMealCommand{
				UserID:      app.CurrentUserID,
				Name:        args[0],
				Type:        domain.MealType(mealType),
				Nutrition:   domain.Nutrition{Calories: calories, Protein: protein, Carbs: carbs, Fats: fats},
				Ingredients: ingredients,
				EatenAt:     eatenAt,
				Completed:   !planned,
			})
			if err != nil {
				return fmt.Errorf("failed to log meal: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), result)
			}
			out := cmd.OutOrStdout()
			if planned {
				fmt.Fprintf(out, "Planned %s: %s\n", mealType, args[0])
			} else {
				fmt.Fprintf(out, "Logged %s: %s\n", mealType, args[0])
			}
			fmt.Fprintf(out, "  ID: %s\n", result.MealID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mealType, "type", "t", string(domain.MealSnack), "meal type (breakfast, lunch, dinner, snack)")
	cmd.Flags().IntVar(&calories, "calories", 0, "calories (kcal)")
	cmd.Flags().IntVar(&protein, "protein", 0, "protein (g)")
	cmd.Flags().IntVar(&carbs, "carbs", 0, "carbohydrates (g)")
	cmd.Flags().IntVar(&fats, "fats", 0, "fats (g)")
	cmd.Flags().StringVarP(&ingredients, "ingredients", "i", "", "comma-separated ingredients")
	cmd.Flags().StringVar(&at, "at", "", "when the meal was eaten (default now)")
	cmd.Flags().BoolVar(&planned, "planned", false, "plan the meal without marking it eaten")
	return cmd
}
