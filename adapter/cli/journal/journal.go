package journal

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

// NewCmd creates the journal command group.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and read journal entries",
	}
	cmd.AddCommand(newWriteCmd())
	cmd.AddCommand(newListCmd())
	return cmd
}

func newWriteCmd() *cobra.Command {
	var (
		mood       string
		reflection string
		triggers   string
		date       string
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write a journal entry",
		Long: `Record how you feel today.

Moods: ` + moodNames() + `

Examples:
  phoenix journal write --mood good --reflection "Long walk after work"
  phoenix journal write --mood low --triggers "stress, poor sleep" --date 2026-03-10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			m, err := domain.ParseMood(mood)
			if err != nil {
				return err
			}
			day, err := app.ParseDate(date)
			if err != nil {
				return err
			}

			result, err := app.WriteJournalHandler.Handle(cmd.Context(), commands.WriteJournalCommand{
				UserID:     app.CurrentUserID,
				Date:       day,
				Mood:       m,
				Reflection: reflection,
				Triggers:   triggers,
			})
			if err != nil {
				return fmt.Errorf("failed to write journal entry: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Journal entry saved (mood: %s)\n  ID: %s\n", m, result.EntryID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mood, "mood", "m", "", "mood ("+moodNames()+")")
	cmd.Flags().StringVarP(&reflection, "reflection", "r", "", "free-text reflection")
	cmd.Flags().StringVarP(&triggers, "triggers", "t", "", "comma-separated triggers")
	cmd.Flags().StringVar(&date, "date", "", "day of the entry (default today)")
	_ = cmd.MarkFlagRequired("mood")
	return cmd
}

func newListCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List recent journal entries, newest first",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			entries, err := app.ListJournalHandler.Handle(cmd.Context(), queries.ListJournalQuery{
				UserID: app.CurrentUserID,
				Days:   days,
			})
			if err != nil {
				return fmt.Errorf("failed to list journal: %w", err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd.OutOrStdout(), entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No journal entries.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-6s (%d/5)\n", e.Date.Format("Mon 2006-01-02"), e.Mood, e.MoodValue)
				if e.Reflection != "" {
					fmt.Fprintf(out, "    %s\n", e.Reflection)
				}
				if e.Triggers != "" {
					fmt.Fprintf(out, "    triggers: %s\n", e.Triggers)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "number of days to include")
	return cmd
}

func moodNames() string {
	names := make([]string, 0, len(domain.Moods()))
	for _, m := range domain.Moods() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
