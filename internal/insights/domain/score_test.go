package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	tracking "github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

func TestComputeScore(t *testing.T) {
	completedAt := daysAgo(1, 10)
	s := Snapshot{
		Meals: []MealRecord{
			{Type: tracking.MealBreakfast, At: daysAgo(0, 8)},
			{Type: tracking.MealDinner, At: daysAgo(1, 19)},
		},
		Trackers: []TrackerRecord{{Name: "smoking", LastReset: testNow.Add(-30 * 24 * time.Hour)}},
		Supplements: []SupplementRecord{
			{Name: "a", TakenToday: true}, {Name: "b", TakenToday: true}, {Name: "c", TakenToday: true},
			{Name: "d", TakenToday: true}, {Name: "e", TakenToday: true}, {Name: "f"},
		},
		Goals: []GoalRecord{
			{Title: "run"}, {Title: "read"},
			{Title: "done", Completed: true, CompletedAt: &completedAt},
		},
	}

	score := ComputeScore(testNow, s)

	assert.InDelta(t, 25.0/3, score.Meal, 1e-9)
	assert.Equal(t, 25.0, score.Streak)
	assert.Equal(t, 25.0, score.Supplement)
	assert.Equal(t, 12.5, score.Goal)
	assert.Equal(t, 71, score.Total)
}

func TestComputeScore_Bounds(t *testing.T) {
	t.Run("empty snapshot scores zero", func(t *testing.T) {
		score := ComputeScore(testNow, Snapshot{})
		assert.Equal(t, RebirthScore{}, score)
	})

	t.Run("every part saturates at 25", func(t *testing.T) {
		var s Snapshot
		for i := 0; i < 10; i++ {
			s.Meals = append(s.Meals, MealRecord{At: daysAgo(0, 7)})
			s.Supplements = append(s.Supplements, SupplementRecord{TakenToday: true})
			s.Goals = append(s.Goals, GoalRecord{})
			s.Trackers = append(s.Trackers, TrackerRecord{LastReset: testNow.Add(-400 * 24 * time.Hour)})
		}

		score := ComputeScore(testNow, s)
		assert.Equal(t, 25.0, score.Meal)
		assert.Equal(t, 25.0, score.Streak)
		assert.Equal(t, 25.0, score.Supplement)
		assert.Equal(t, 25.0, score.Goal)
		assert.Equal(t, 100, score.Total)
	})

	t.Run("future reset adds nothing", func(t *testing.T) {
		s := Snapshot{Trackers: []TrackerRecord{{LastReset: testNow.Add(48 * time.Hour)}}}
		assert.Equal(t, 0.0, ComputeScore(testNow, s).Streak)
	})
}
