package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/adapter/cli/goal"
	"github.com/felixgeelhaar/phoenix/adapter/cli/insights"
	"github.com/felixgeelhaar/phoenix/adapter/cli/journal"
	"github.com/felixgeelhaar/phoenix/adapter/cli/meal"
	"github.com/felixgeelhaar/phoenix/adapter/cli/points"
	"github.com/felixgeelhaar/phoenix/adapter/cli/routine"
	"github.com/felixgeelhaar/phoenix/adapter/cli/streak"
	"github.com/felixgeelhaar/phoenix/adapter/cli/supplement"
	"github.com/felixgeelhaar/phoenix/internal/app"
	"github.com/felixgeelhaar/phoenix/pkg/config"
	"github.com/felixgeelhaar/phoenix/pkg/observability"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		observability.NewLogger(observability.DefaultLogConfig()).Error("failed to load config", "error", err)
		return 1
	}

	// The CLI only logs warnings unless asked for more.
	level := "warn"
	if cfg.IsDevelopment() && cfg.LogLevel == "debug" {
		level = "debug"
	}
	logger := observability.ServiceLogger("phoenix", level, false)
	cli.SetLogger(logger)

	var container *app.Container
	if cfg.IsLocalMode() {
		container, err = app.NewLocalContainer(ctx, cfg, logger)
	} else {
		container, err = app.NewContainer(ctx, cfg, logger)
	}
	if err != nil {
		// Commands report cli.ErrNotInitialized; help and version still work.
		logger.Warn("failed to initialize container", "error", err)
	} else {
		defer container.Close()
		cli.SetApp(cli.NewApp(container))
	}

	err = cli.Execute(ctx,
		meal.NewCmd(),
		supplement.NewCmd(),
		streak.NewCmd(),
		journal.NewCmd(),
		goal.NewCmd(),
		routine.NewCmd(),
		insights.NewCmd(),
		points.NewCmd(),
	)
	if err != nil {
		return 1
	}
	return 0
}
