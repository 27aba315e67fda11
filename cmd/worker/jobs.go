package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/felixgeelhaar/phoenix/internal/app"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/pkg/config"
	"github.com/felixgeelhaar/phoenix/pkg/observability"
)

const jobTimeout = 2 * time.Minute

// jobs runs the worker's scheduled maintenance against a container.
type jobs struct {
	container *app.Container
	logger    *slog.Logger
	metrics   observability.Metrics
	retention time.Duration
}

func newJobs(c *app.Container, retentionDays int) *jobs {
	if retentionDays <= 0 {
		retentionDays = 7
	}
	return &jobs{
		container: c,
		logger:    c.Logger,
		metrics:   c.Metrics,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// newScheduler registers every job on a cron scheduler in the configured
// timezone. Resets are skipped when disabled.
func newScheduler(ctx context.Context, cfg *config.Config, j *jobs) (*cron.Cron, error) {
	scheduler := cron.New(
		cron.WithLocation(cfg.Location()),
		cron.WithLogger(cronLogger{logger: j.logger}),
		cron.WithChain(cron.Recover(cronLogger{logger: j.logger})),
	)

	type entry struct {
		name     string
		schedule string
		run      func(context.Context) error
		enabled  bool
	}
	entries := []entry{
		{"supplement_day_reset", cfg.WorkerDailyResetSchedule, j.resetDay, cfg.WorkerResetsEnabled},
		{"supplement_week_reset", cfg.WorkerWeeklyResetSchedule, j.resetWeek, cfg.WorkerResetsEnabled},
		{"weekly_report", cfg.WorkerWeeklyReportSchedule, j.weeklyReport, true},
		{"outbox_cleanup", cfg.OutboxCleanupSchedule, j.cleanupOutbox, true},
	}

	for _, e := range entries {
		if !e.enabled || e.schedule == "" {
			j.logger.Info("job disabled", "job", e.name)
			continue
		}
		if _, err := scheduler.AddFunc(e.schedule, func() { _ = j.run(ctx, e.name, e.run) }); err != nil {
			return nil, fmt.Errorf("schedule %s %q: %w", e.name, e.schedule, err)
		}
		j.logger.Info("job scheduled", "job", e.name, "schedule", e.schedule)
	}
	return scheduler, nil
}

// run executes one job with a timeout and records its outcome.
func (j *jobs) run(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)

	status := "success"
	if err != nil {
		status = "error"
		j.logger.Error("job failed", "job", name, "error", err)
	}
	j.metrics.Counter(observability.MetricWorkerJobRuns, 1, observability.T("job", name), observability.T("status", status))
	j.metrics.Timing(observability.MetricWorkerJobLatency, time.Since(start), observability.T("job", name))
	return err
}

func (j *jobs) resetDay(ctx context.Context) error {
	return j.reset(ctx, commands.ResetDay)
}

func (j *jobs) resetWeek(ctx context.Context) error {
	return j.reset(ctx, commands.ResetWeek)
}

func (j *jobs) reset(ctx context.Context, scope commands.ResetScope) error {
	result, err := j.container.ResetSupplementsHandler.Handle(ctx, commands.ResetSupplementsCommand{Scope: scope})
	if err != nil {
		return err
	}
	j.metrics.Counter(observability.MetricSupplementRollover, int64(result.Reset), observability.T("scope", string(scope)))
	j.logger.Info("supplements rolled over", "scope", scope, "reset", result.Reset)
	return nil
}

func (j *jobs) weeklyReport(ctx context.Context) error {
	report, err := j.container.InsightsService.WeeklyReport(ctx, j.container.UserID)
	if err != nil {
		return err
	}
	j.logger.Info("weekly report",
		"user_id", j.container.UserID,
		"start", report.Start.Format("2006-01-02"),
		"total_points", report.TotalPoints,
		"best_day", report.BestDay.Date.Format("Monday"),
		"mood_trend", report.MoodTrend,
		"tip", report.Tip,
	)
	return nil
}

func (j *jobs) cleanupOutbox(ctx context.Context) error {
	deleted, err := j.container.OutboxRepo.DeleteOld(ctx, j.container.Clock.Now().Add(-j.retention))
	if err != nil {
		return err
	}
	if deleted > 0 {
		j.logger.Info("outbox cleanup completed", "deleted", deleted, "retention", j.retention)
	}
	return nil
}

// cronLogger adapts slog to cron's logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
