package domain

import (
	"time"

	"github.com/google/uuid"
)

const day = 24 * time.Hour

// DaysSince counts whole 24h periods between lastReset and now. A lastReset
// in the future yields 0.
func DaysSince(now, lastReset time.Time) int {
	elapsed := now.Sub(lastReset)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / day)
}

// IsMilestone reports whether d is 7, 30, 100 or a positive multiple of 50.
func IsMilestone(d int) bool {
	switch {
	case d == 7 || d == 30 || d == 100:
		return true
	case d > 0 && d%50 == 0:
		return true
	default:
		return false
	}
}

// NextMilestone returns the smallest milestone strictly greater than d.
func NextMilestone(d int) int {
	switch {
	case d < 7:
		return 7
	case d < 30:
		return 30
	default:
		return (d/50 + 1) * 50
	}
}

// Streak is the derived state of one addiction tracker.
type Streak struct {
	TrackerID     uuid.UUID
	Name          string
	Days          int
	Milestone     bool
	NextMilestone int
	LastReset     time.Time
}

// Streaks derives a streak per tracker, in snapshot order.
func Streaks(now time.Time, trackers []TrackerRecord) []Streak {
	streaks := make([]Streak, 0, len(trackers))
	for _, t := range trackers {
		d := DaysSince(now, t.LastReset)
		streaks = append(streaks, Streak{
			TrackerID:     t.ID,
			Name:          t.Name,
			Days:          d,
			Milestone:     IsMilestone(d),
			NextMilestone: NextMilestone(d),
			LastReset:     t.LastReset,
		})
	}
	return streaks
}

// TotalStreakDays sums DaysSince over every tracker.
func TotalStreakDays(now time.Time, trackers []TrackerRecord) int {
	total := 0
	for _, t := range trackers {
		total += DaysSince(now, t.LastReset)
	}
	return total
}

// shortestStreak returns the smallest DaysSince among trackers. ok is false
// when there are none.
func shortestStreak(now time.Time, trackers []TrackerRecord) (int, bool) {
	if len(trackers) == 0 {
		return 0, false
	}
	shortest := DaysSince(now, trackers[0].LastReset)
	for _, t := range trackers[1:] {
		if d := DaysSince(now, t.LastReset); d < shortest {
			shortest = d
		}
	}
	return shortest, true
}
