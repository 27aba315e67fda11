package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/phoenix/pkg/observability"
)

var (
	verbose    bool
	jsonOutput bool
	logger     *slog.Logger
)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// NewRootCmd creates the base command. Command groups are added by the
// caller.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "phoenix",
		Short: "Phoenix - wellness tracking and insights",
		Long: `Phoenix tracks meals, supplements, addiction streaks, journal entries,
goals and routines, and derives a daily Rebirth Score, pattern insights,
predictions and a weekly report from them.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				SetLogger(observability.ServiceLogger("phoenix", "debug", false))
			}
			log := currentLogger()
			info := commandContext{
				correlationID: uuid.New(),
				startedAt:     time.Now(),
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, commandContextKey{}, info)
			ctx = observability.WithCorrelationID(ctx, info.correlationID.String())
			if a := GetApp(); a != nil {
				ctx = observability.WithUserID(ctx, a.CurrentUserID.String())
			}
			cmd.SetContext(ctx)
			log.DebugContext(ctx, "command start", "command", cmd.CommandPath())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if a := GetApp(); a != nil && a.AfterCommand != nil {
				a.AfterCommand(ctx)
			}
			info, ok := ctx.Value(commandContextKey{}).(commandContext)
			if !ok {
				return
			}
			currentLogger().DebugContext(ctx, "command end",
				"command", cmd.CommandPath(),
				"duration_ms", time.Since(info.startedAt).Milliseconds(),
			)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log command activity at debug level")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command with the given command groups.
func Execute(ctx context.Context, cmds ...*cobra.Command) error {
	root := NewRootCmd()
	root.AddCommand(cmds...)
	return root.ExecuteContext(ctx)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// JSONOutput reports whether --json was given.
func JSONOutput() bool {
	return jsonOutput
}

func currentLogger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
