package streak

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
)

func newStartCmd() *cobra.Command {
	var since string

	cmd := &cobra.Command{
		Use:   "start [name]",
		Short: "Start tracking a streak",
		Long: `Start a clean streak. Use --since when you quit before today.

Examples:
  phoenix streak start smoking
  phoenix streak start sugar --since 2026-02-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			startedAt, err := app.ParseDate(since)
			if err != nil {
				return err
			}

			result, err := app.StartAddictionHandler.Handle(cmd.Context(), commands.StartAddictionCommand{
				UserID:    app.CurrentUserID,
				Name:      args[0],
				StartedAt: startedAt,
			})
			if err != nil {
				return fmt.Errorf("failed to start streak: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tracking %s\n  ID: %s\n", args[0], result.TrackerID)
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "when the streak started (default now)")
	return cmd
}
