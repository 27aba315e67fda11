package meal

import (
	"github.com/spf13/cobra"
)

// NewCmd creates the meal command group.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal",
		Short: "Log and review meals",
		Long:  `Log meals with their nutrition and ingredients, mark planned meals as eaten, and list recent meals.`,
	}
	cmd.AddCommand(newLogCmd())
	cmd.AddCommand(newCompleteCmd())
	cmd.AddCommand(newListCmd())
	return cmd
}
