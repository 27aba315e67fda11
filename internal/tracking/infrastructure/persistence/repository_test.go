package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNow is Wednesday 2026-03-11 09:30 UTC.
var testNow = time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC)

func newTestConnection(t *testing.T) database.Connection {
	t.Helper()
	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, database.Config{SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, migrations.Run(ctx, conn))
	return conn
}

func TestMealRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMealRepository(newTestConnection(t))
	userID := uuid.New()

	meal, err := domain.NewMeal(userID, "Omelette", domain.MealBreakfast,
		domain.Nutrition{Calories: 420, Protein: 28, Carbs: 4, Fats: 30}, "eggs, Spinach, feta", testNow, testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, meal))

	t.Run("round trips every field", func(t *testing.T) {
		found, err := repo.FindByID(ctx, meal.ID())
		require.NoError(t, err)
		require.NotNil(t, found)

		assert.Equal(t, userID, found.UserID())
		assert.Equal(t, domain.MealBreakfast, found.Type())
		assert.Equal(t, meal.Nutrition(), found.Nutrition())
		assert.Equal(t, []string{"eggs", "Spinach", "feta"}, found.Ingredients())
		assert.True(t, testNow.Equal(found.EatenAt()))
		assert.False(t, found.IsCompleted())
	})

	t.Run("save updates existing row", func(t *testing.T) {
		require.NoError(t, meal.Complete(testNow.Add(time.Minute)))
		require.NoError(t, repo.Save(ctx, meal))

		found, err := repo.FindByID(ctx, meal.ID())
		require.NoError(t, err)
		assert.True(t, found.IsCompleted())
	})

	t.Run("missing meal returns nil", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("find since respects the window", func(t *testing.T) {
		old, err := domain.NewMeal(userID, "Leftovers", domain.MealDinner, domain.Nutrition{}, "", testNow.AddDate(0, 0, -40), testNow)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, old))

		meals, err := repo.FindSince(ctx, userID, testNow.AddDate(0, 0, -30))
		require.NoError(t, err)
		require.Len(t, meals, 1)
		assert.Equal(t, meal.ID(), meals[0].ID())

		all, err := repo.FindSince(ctx, userID, time.Time{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, old.ID(), all[0].ID())
	})
}

func TestSupplementRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSupplementRepository(newTestConnection(t))
	userID := uuid.New()

	s, err := domain.NewSupplement(userID, "Creatine", "5g", domain.TimeAfternoon, testNow.AddDate(0, 0, -3))
	require.NoError(t, err)
	require.NoError(t, s.MarkTaken(testNow.AddDate(0, 0, -1)))
	require.NoError(t, s.MarkTaken(testNow))
	require.NoError(t, repo.Save(ctx, s))

	other, err := domain.NewSupplement(uuid.New(), "Iron", "", domain.TimeMorning, testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	found, err := repo.FindByID(ctx, s.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.IsTakenOn(testNow))
	assert.Equal(t, "0011000", found.History().String())
	require.NotNil(t, found.LastTakenAt())
	assert.True(t, testNow.Equal(*found.LastTakenAt()))

	byUser, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Delete(ctx, s.ID()))
	require.NoError(t, repo.Delete(ctx, s.ID()))
	gone, err := repo.FindByID(ctx, s.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAddictionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAddictionRepository(newTestConnection(t))
	userID := uuid.New()

	tracker, err := domain.NewAddictionTracker(userID, "Alcohol", testNow.AddDate(0, 0, -35), testNow.AddDate(0, 0, -35))
	require.NoError(t, err)
	require.NoError(t, tracker.CheckIn(testNow))
	require.NoError(t, repo.Save(ctx, tracker))

	found, err := repo.FindByID(ctx, tracker.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, testNow.AddDate(0, 0, -35).Equal(found.LastReset()))
	require.NotNil(t, found.LastCheckIn())

	found.Reset(testNow)
	require.NoError(t, repo.Save(ctx, found))

	trackers, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, trackers, 1)
	assert.True(t, testNow.Equal(trackers[0].LastReset()))
	assert.Nil(t, trackers[0].LastCheckIn())

	require.NoError(t, repo.Delete(ctx, tracker.ID()))
	trackers, err = repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, trackers)
}

func TestJournalRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewJournalRepository(newTestConnection(t))
	userID := uuid.New()

	for i, mood := range []domain.Mood{domain.MoodLow, domain.MoodOkay, domain.MoodGreat} {
		entry, err := domain.NewJournalEntry(userID, testNow.AddDate(0, 0, -i*10), mood, "note", "stress", testNow)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, entry))
	}

	entries, err := repo.FindSince(ctx, userID, testNow.AddDate(0, 0, -15))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.MoodOkay, entries[0].Mood())
	assert.Equal(t, domain.MoodLow, entries[1].Mood())
	assert.Equal(t, "stress", entries[1].Triggers())
}

func TestGoalRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(newTestConnection(t))
	userID := uuid.New()

	started := testNow.Add(-2 * time.Hour)
	withStart, err := domain.NewGoal(userID, "Meditate", &started, testNow)
	require.NoError(t, err)
	require.NoError(t, withStart.Complete(testNow))
	require.NoError(t, repo.Save(ctx, withStart))

	noStart, err := domain.NewGoal(userID, "Read", nil, testNow.Add(time.Second))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, noStart))

	goals, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, goals, 2)

	assert.True(t, goals[0].IsCompleted())
	require.NotNil(t, goals[0].StartedAt())
	assert.True(t, started.Equal(*goals[0].StartedAt()))
	require.NotNil(t, goals[0].CompletedAt())

	assert.False(t, goals[1].IsCompleted())
	assert.Nil(t, goals[1].StartedAt())
	assert.Nil(t, goals[1].CompletedAt())
}

func TestRoutineRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRoutineRepository(newTestConnection(t))
	userID := uuid.New()

	for i, pct := range []int{100, 60, 0} {
		c, err := domain.NewRoutineCompletion(userID, "", testNow.AddDate(0, 0, -i*4), pct, testNow)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, c))
	}

	completions, err := repo.FindSince(ctx, userID, testNow.AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, completions, 2)
	assert.Equal(t, 60, completions[0].Percentage())
	assert.Equal(t, domain.DefaultRoutineName, completions[1].Name())
}

func TestPointsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPointsRepository(newTestConnection(t))
	userID := uuid.New()

	total, err := repo.Total(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, total)

	source := uuid.New()
	award, err := domain.NewAward(userID, domain.ReasonGoalCompleted, source, testNow)
	require.NoError(t, err)

	added, err := repo.Add(ctx, award)
	require.NoError(t, err)
	assert.True(t, added)

	replay, err := domain.NewAward(userID, domain.ReasonGoalCompleted, source, testNow)
	require.NoError(t, err)
	added, err = repo.Add(ctx, replay)
	require.NoError(t, err)
	assert.False(t, added)

	supplement, err := domain.NewAward(userID, domain.ReasonSupplementTaken, uuid.New(), testNow.Add(time.Hour))
	require.NoError(t, err)
	_, err = repo.Add(ctx, supplement)
	require.NoError(t, err)

	total, err = repo.Total(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 22, total)

	recent, err := repo.Recent(ctx, userID, 5)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, domain.ReasonSupplementTaken, recent[0].Reason)
	assert.Equal(t, source, recent[1].SourceEventID)
}

func TestRepositories_JoinUnitOfWork(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t)
	repo := NewGoalRepository(conn)
	uow := database.NewUnitOfWork(conn)

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)

	goal, err := domain.NewGoal(uuid.New(), "Rolled back", nil, testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Save(txCtx, goal))

	inTx, err := repo.FindByID(txCtx, goal.ID())
	require.NoError(t, err)
	assert.NotNil(t, inTx)

	require.NoError(t, uow.Rollback(txCtx))

	found, err := repo.FindByID(ctx, goal.ID())
	require.NoError(t, err)
	assert.Nil(t, found)
}
