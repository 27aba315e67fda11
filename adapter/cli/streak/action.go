package streak

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

type action struct {
	use     string
	short   string
	aliases []string
	kind    commands.TrackerAction
	done    string
}

var (
	actionReset = action{
		use:   "reset [tracker-id]",
		short: "Restart a streak after a relapse",
		kind:  commands.TrackerReset,
		done:  "Streak reset. A reset is not the end.",
	}
	actionCheckIn = action{
		use:     "checkin [tracker-id]",
		short:   "Confirm another clean day",
		aliases: []string{"check-in"},
		kind:    commands.TrackerCheckIn,
		done:    "Checked in. Keep going!",
	}
	actionDelete = action{
		use:     "delete [tracker-id]",
		short:   "Stop tracking a streak",
		aliases: []string{"rm"},
		kind:    commands.TrackerDelete,
		done:    "Tracker deleted.",
	}
)

func newActionCmd(a action) *cobra.Command {
	return &cobra.Command{
		Use:     a.use,
		Short:   a.short,
		Aliases: a.aliases,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			trackerID, err := cli.ParseID("tracker", args[0])
			if err != nil {
				return err
			}

			err = app.TrackerActionHandler.Handle(cmd.Context(), commands.TrackerActionCommand{
				TrackerID: trackerID,
				UserID:    app.CurrentUserID,
				Action:    a.kind,
			})
			if errors.Is(err, domain.ErrAlreadyCheckedIn) {
				fmt.Fprintln(cmd.OutOrStdout(), "Already checked in today.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to %s tracker: %w", a.kind, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), a.done)
			return nil
		},
	}
}
