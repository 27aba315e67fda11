package streak

import (
	"github.com/spf13/cobra"
)

// NewCmd creates the streak command group.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Track clean streaks for habits you are quitting",
		Long: `Start an addiction tracker, check in each clean day, and reset after a relapse.

Milestones are reached at 7, 30 and 100 days and every 50 days after that.`,
		Aliases: []string{"tracker"},
	}
	cmd.AddCommand(newStartCmd())
	cmd.AddCommand(newActionCmd(actionReset))
	cmd.AddCommand(newActionCmd(actionCheckIn))
	cmd.AddCommand(newActionCmd(actionDelete))
	cmd.AddCommand(newListCmd())
	return cmd
}
