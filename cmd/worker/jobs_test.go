package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/phoenix/internal/app"
	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
	"github.com/felixgeelhaar/phoenix/pkg/config"
	"github.com/felixgeelhaar/phoenix/pkg/observability"
)

var testNow = time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:                     "test",
		UserID:                     "00000000-0000-0000-0000-000000000001",
		Timezone:                   "UTC",
		WorkerDailyResetSchedule:   "0 0 * * *",
		WorkerWeeklyResetSchedule:  "0 0 * * 0",
		WorkerWeeklyReportSchedule: "0 20 * * 0",
		WorkerResetsEnabled:        true,
		OutboxCleanupSchedule:      "@hourly",
	}
}

func newTestContainer(t *testing.T) (*app.Container, *sharedDomain.FixedClock) {
	t.Helper()
	clock := sharedDomain.NewFixedClock(testNow)
	c, err := app.NewMemoryContainer(testConfig(), observability.NewTestLogger(), clock)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, clock
}

func TestNewScheduler(t *testing.T) {
	c, _ := newTestContainer(t)
	ctx := context.Background()

	scheduler, err := newScheduler(ctx, testConfig(), newJobs(c, 7))
	require.NoError(t, err)
	assert.Len(t, scheduler.Entries(), 4)

	cfg := testConfig()
	cfg.WorkerResetsEnabled = false
	scheduler, err = newScheduler(ctx, cfg, newJobs(c, 7))
	require.NoError(t, err)
	assert.Len(t, scheduler.Entries(), 2)

	cfg = testConfig()
	cfg.WorkerDailyResetSchedule = "every midnight"
	_, err = newScheduler(ctx, cfg, newJobs(c, 7))
	assert.ErrorContains(t, err, "supplement_day_reset")
}

func TestJobs_SupplementRollover(t *testing.T) {
	c, _ := newTestContainer(t)
	ctx := context.Background()

	added, err := c.AddSupplementHandler.Handle(ctx, commands.AddSupplementCommand{UserID: c.UserID, Name: "Zinc"})
	require.NoError(t, err)
	_, err = c.TakeSupplementHandler.Handle(ctx, commands.TakeSupplementCommand{SupplementID: added.SupplementID, UserID: c.UserID})
	require.NoError(t, err)

	j := newJobs(c, 7)
	require.NoError(t, j.run(ctx, "supplement_day_reset", j.resetDay))

	list, err := c.ListSupplementsHandler.Handle(ctx, queries.ListSupplementsQuery{UserID: c.UserID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].TakenToday)
	assert.Equal(t, 1, list[0].DaysTaken)

	require.NoError(t, j.run(ctx, "supplement_week_reset", j.resetWeek))
	list, err = c.ListSupplementsHandler.Handle(ctx, queries.ListSupplementsQuery{UserID: c.UserID})
	require.NoError(t, err)
	assert.Equal(t, 0, list[0].DaysTaken)

	metrics := c.Metrics.(*observability.InMemoryMetrics)
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricWorkerJobRuns,
		observability.T("job", "supplement_day_reset"), observability.T("status", "success")))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricSupplementRollover, observability.T("scope", "day")))
}

func TestJobs_RunRecordsFailure(t *testing.T) {
	c, _ := newTestContainer(t)
	j := newJobs(c, 7)

	err := j.run(context.Background(), "broken", func(context.Context) error { return errors.New("boom") })
	assert.Error(t, err)

	metrics := c.Metrics.(*observability.InMemoryMetrics)
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricWorkerJobRuns,
		observability.T("job", "broken"), observability.T("status", "error")))
}

func TestJobs_WeeklyReportAndCleanup(t *testing.T) {
	c, clock := newTestContainer(t)
	ctx := context.Background()

	_, err := c.WriteJournalHandler.Handle(ctx, commands.WriteJournalCommand{UserID: c.UserID, Mood: "good"})
	require.NoError(t, err)
	c.DrainEvents(ctx)

	j := newJobs(c, 7)
	require.NoError(t, j.weeklyReport(ctx))

	clock.Advance(8 * 24 * time.Hour)
	require.NoError(t, j.cleanupOutbox(ctx))
}

func TestHealthMux(t *testing.T) {
	c, _ := newTestContainer(t)
	mux := newHealthMux(c)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
