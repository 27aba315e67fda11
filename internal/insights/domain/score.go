package domain

import (
	"math"
	"time"

	shared "github.com/felixgeelhaar/phoenix/internal/shared/domain"
)

const (
	maxSubScore = 25.0

	mealTarget       = 3.0
	streakTarget     = 30.0
	supplementTarget = 5.0
	goalTarget       = 4.0
)

// RebirthScore is the 0..100 composite wellness score. Each part is in
// [0,25].
type RebirthScore struct {
	Meal       float64
	Streak     float64
	Supplement float64
	Goal       float64
	Total      int
}

// ComputeScore derives the Rebirth Score for the day of now.
func ComputeScore(now time.Time, s Snapshot) RebirthScore {
	meals := 0
	for _, m := range s.Meals {
		if shared.SameDay(now, m.At) {
			meals++
		}
	}

	taken := 0
	for _, sp := range s.Supplements {
		if sp.TakenToday {
			taken++
		}
	}

	active := 0
	for _, g := range s.Goals {
		if !g.Completed {
			active++
		}
	}

	score := RebirthScore{
		Meal:       subScore(meals, mealTarget),
		Streak:     subScore(TotalStreakDays(now, s.Trackers), streakTarget),
		Supplement: subScore(taken, supplementTarget),
		Goal:       subScore(active, goalTarget),
	}
	score.Total = int(math.Round(score.Meal + score.Streak + score.Supplement + score.Goal))
	return score
}

func subScore(n int, target float64) float64 {
	return clamp(float64(n)/target*maxSubScore, 0, maxSubScore)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
