package insights

import (
	"github.com/spf13/cobra"
)

// NewCmd creates the insights command group.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Wellness score, patterns and predictions",
		Long: `Derived views over everything you track.

Examples:
  phoenix insights score         # Today's Rebirth Score
  phoenix insights patterns      # Patterns over the last 30 days
  phoenix insights predictions   # Outlook for tomorrow
  phoenix insights report        # Weekly report
  phoenix insights compliance    # Supplement compliance this week
  phoenix insights grocery       # Ingredients used this week`,
		Aliases: []string{"in"},
	}
	cmd.AddCommand(newScoreCmd())
	cmd.AddCommand(newPatternsCmd())
	cmd.AddCommand(newPredictionsCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newComplianceCmd())
	cmd.AddCommand(newGroceryCmd())
	return cmd
}
