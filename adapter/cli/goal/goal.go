package goal

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

// NewCmd creates the goal command group.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Set and complete personal goals",
	}
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newCompleteCmd())
	cmd.AddCommand(newListCmd())
	return cmd
}

func newCreateCmd() *cobra.Command {
	var started string

	cmd := &cobra.Command{
		Use:   "create [title]",
		Short: "Create a goal",
		Long: `Create a goal. --started records when you began working on it.

Examples:
  phoenix goal create "Run a 5k"
  phoenix goal create "Read 12 books" --started "2026-03-01 07:00"`,
		Aliases: []string{"add"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			startedAt, err := app.ParseDate(started)
			if err != nil {
				return err
			}

			result, err := app.CreateGoalHandler.Handle(cmd.Context(), commands.CreateGoalCommand{
				UserID:    app.CurrentUserID,
				Title:     args[0],
				StartedAt: startedAt,
			})
			if err != nil {
				return fmt.Errorf("failed to create goal: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created goal: %s\n  ID: %s\n", args[0], result.GoalID)
			return nil
		},
	}

	cmd.Flags().StringVar(&started, "started", "", "when you started working on the goal")
	return cmd
}

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "complete [goal-id]",
		Short:   "Mark a goal as completed",
		Aliases: []string{"done"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			goalID, err := cli.ParseID("goal", args[0])
			if err != nil {
				return err
			}

			err = app.CompleteGoalHandler.Handle(cmd.Context(), commands.CompleteGoalCommand{
				GoalID: goalID,
				UserID: app.CurrentUserID,
			})
			if errors.Is(err, domain.ErrGoalAlreadyCompleted) {
				fmt.Fprintln(cmd.OutOrStdout(), "Goal was already completed.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to complete goal: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Goal completed. Well done!")
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List goals",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			goals, err := app.ListGoalsHandler.Handle(cmd.Context(), queries.ListGoalsQuery{
				UserID:           app.CurrentUserID,
				IncludeCompleted: all,
			})
			if err != nil {
				return fmt.Errorf("failed to list goals: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), goals)
			}

			out := cmd.OutOrStdout()
			if len(goals) == 0 {
				fmt.Fprintln(out, "No goals.")
				return nil
			}
			for _, g := range goals {
				check := " "
				if g.Completed {
					check = "x"
				}
				fmt.Fprintf(out, "[%s] %s\n    ID: %s\n", check, g.Title, g.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed goals")
	return cmd
}
