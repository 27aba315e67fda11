package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/felixgeelhaar/phoenix/pkg/config"
	"github.com/felixgeelhaar/phoenix/pkg/observability"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

func localConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppEnv:         "test",
		LocalMode:      true,
		DatabaseDriver: "sqlite",
		SQLitePath:     filepath.Join(t.TempDir(), "phoenix.db"),
		UserID:         testUserID,
		Timezone:       "UTC",
	}
}

// TestLocalModeContainer tests that a local mode container can be created and used.
func TestLocalModeContainer(t *testing.T) {
	ctx := context.Background()
	container, err := NewLocalContainer(ctx, localConfig(t), observability.NewTestLogger())
	require.NoError(t, err)
	defer container.Close()

	assert.Equal(t, database.DriverSQLite, container.DBDriver)
	assert.NotNil(t, container.DBConn)
	assert.Nil(t, container.RedisClient)
	assert.Nil(t, container.Prometheus)
	assert.NotNil(t, container.InProcessEventBus)
	assert.Equal(t, uuid.MustParse(testUserID), container.UserID)

	assert.NotNil(t, container.Repos.Meals)
	assert.NotNil(t, container.Repos.Points)
	assert.NotNil(t, container.OutboxRepo)
	assert.NotNil(t, container.LogMealHandler)
	assert.NotNil(t, container.ResetSupplementsHandler)
	assert.NotNil(t, container.InsightsService)

	health := container.Health.GetOverallHealth(ctx)
	assert.Equal(t, observability.HealthStatusHealthy, health.Status)
}

// TestLocalModePointsWorkflow logs actions, drains the outbox and reads the
// points ledger and the score back from SQLite.
func TestLocalModePointsWorkflow(t *testing.T) {
	ctx := context.Background()
	container, err := NewLocalContainer(ctx, localConfig(t), observability.NewTestLogger())
	require.NoError(t, err)
	defer container.Close()
	userID := container.UserID

	_, err = container.LogMealHandler.Handle(ctx, commands.LogMealCommand{
		UserID:      userID,
		Name:        "Oats",
		Type:        domain.MealBreakfast,
		Nutrition:   domain.Nutrition{Calories: 350, Protein: 12},
		Ingredients: "oats, milk",
	})
	require.NoError(t, err)

	_, err = container.WriteJournalHandler.Handle(ctx, commands.WriteJournalCommand{
		UserID: userID,
		Mood:   domain.MoodGood,
	})
	require.NoError(t, err)

	container.DrainEvents(ctx)
	container.DrainEvents(ctx)

	ledger, err := container.GetPointsHandler.Handle(ctx, queries.GetPointsQuery{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, 20, ledger.Total)
	assert.Len(t, ledger.Recent, 2)

	score, err := container.InsightsService.Score(ctx, userID)
	require.NoError(t, err)
	assert.InDelta(t, 25.0/3, score.Meal, 1e-9)

	items, err := container.InsightsService.GroceryList(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestLocalModeRejectsInvalidUser(t *testing.T) {
	cfg := localConfig(t)
	cfg.UserID = "local"

	_, err := NewLocalContainer(context.Background(), cfg, observability.NewTestLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PHOENIX_USER_ID")
}

func TestMemoryContainer_SupplementRollover(t *testing.T) {
	ctx := context.Background()
	// Wednesday 2026-03-11 08:00 UTC
	clock := sharedDomain.NewFixedClock(time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC))
	cfg := &config.Config{AppEnv: "test", UserID: testUserID, Timezone: "UTC"}

	container, err := NewMemoryContainer(cfg, observability.NewTestLogger(), clock)
	require.NoError(t, err)
	defer container.Close()
	userID := container.UserID

	added, err := container.AddSupplementHandler.Handle(ctx, commands.AddSupplementCommand{
		UserID:    userID,
		Name:      "Vitamin D",
		Dosage:    "1000 IU",
		TimeOfDay: domain.TimeMorning,
	})
	require.NoError(t, err)

	_, err = container.TakeSupplementHandler.Handle(ctx, commands.TakeSupplementCommand{
		SupplementID: added.SupplementID,
		UserID:       userID,
	})
	require.NoError(t, err)
	container.DrainEvents(ctx)

	compliance, err := container.InsightsService.Compliance(ctx, userID)
	require.NoError(t, err)
	require.Len(t, compliance, 1)
	assert.True(t, compliance[0].TakenToday)
	assert.InDelta(t, 14.3, compliance[0].Percent, 0.05)

	reset, err := container.ResetSupplementsHandler.Handle(ctx, commands.ResetSupplementsCommand{Scope: commands.ResetWeek})
	require.NoError(t, err)
	assert.Equal(t, 1, reset.Reset)

	compliance, err = container.InsightsService.Compliance(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, compliance[0].Percent)

	ledger, err := container.GetPointsHandler.Handle(ctx, queries.GetPointsQuery{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, 2, ledger.Total)
}
