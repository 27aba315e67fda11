package supplement

import (
	"github.com/spf13/cobra"
)

// NewCmd creates the supplement command group.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "supplement",
		Short:   "Manage supplements and daily doses",
		Long:    `Add supplements, record today's dose, and review the weekly history of each one.`,
		Aliases: []string{"supp"},
	}
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newTakeCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newResetCmd())
	return cmd
}
