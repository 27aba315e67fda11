package insights

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "report",
		Short:   "Show the weekly report",
		Aliases: []string{"weekly"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			report, err := app.InsightsService.WeeklyReport(cmd.Context(), app.CurrentUserID)
			if err != nil {
				return fmt.Errorf("failed to build weekly report: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Weekly report %s - %s\n\n",
				report.Start.Format("Jan 2"), report.End.Format("Jan 2"))

			for _, d := range report.Days {
				fmt.Fprintf(out, "  %s  %s %3d pts\n", d.Date.Format("Mon"), bar(float64(d.Points), float64(max(report.BestDay.Points, 1)), 15), d.Points)
			}
			fmt.Fprintf(out, "\nTotal points: %d (best day %s)\n", report.TotalPoints, report.BestDay.Date.Format("Monday"))
			fmt.Fprintf(out, "Average nutrition: %.0f kcal, %.0f g protein\n", report.AvgCalories, report.AvgProtein)

			if report.MoodThisWeek != nil {
				fmt.Fprintf(out, "Mood: %.1f/5 (%s)\n", *report.MoodThisWeek, report.MoodTrend)
			}
			for _, t := range report.Trackers {
				fmt.Fprintf(out, "Streak %s: %d days (%s)\n", t.Name, t.Current, t.Trend)
			}
			if report.Tip != "" {
				fmt.Fprintf(out, "\nTip: %s\n", report.Tip)
			}
			return nil
		},
	}
}
