package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	tracking "github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

func TestSnapshot_Fingerprint(t *testing.T) {
	started := daysAgo(3, 8)
	base := func() Snapshot {
		return Snapshot{
			Meals:       []MealRecord{{Type: tracking.MealLunch, Name: "salad", Calories: 400, At: daysAgo(0, 8)}},
			Supplements: []SupplementRecord{{Name: "zinc", TakenToday: true}},
			Trackers:    []TrackerRecord{{ID: uuid.MustParse("7d9f2c1e-0000-4000-8000-000000000001"), Name: "smoking", LastReset: daysAgo(10, 0)}},
			Journal:     []JournalRecord{{Date: daysAgo(1, 20), Mood: tracking.MoodGood}},
			Goals:       []GoalRecord{{Title: "run", StartedAt: &started}},
			Routines:    []RoutineRecord{{Date: daysAgo(1, 0), Percentage: 80}},
		}
	}

	assert.Equal(t, base().Fingerprint(), base().Fingerprint())
	assert.NotEqual(t, base().Fingerprint(), Snapshot{}.Fingerprint())

	changed := base()
	changed.Supplements[0].TakenToday = false
	assert.NotEqual(t, base().Fingerprint(), changed.Fingerprint())

	changed = base()
	changed.Goals[0].StartedAt = nil
	assert.NotEqual(t, base().Fingerprint(), changed.Fingerprint())

	// Records moved between collections must not collide.
	a := Snapshot{Meals: []MealRecord{{Name: "x"}}}
	b := Snapshot{Supplements: []SupplementRecord{{Name: "x"}}}
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
