// Package domain holds the wellness metrics engine: pure functions that fold
// over an immutable Snapshot of a user's tracked data and derive streaks,
// the Rebirth Score, pattern insights, predictions and the weekly report.
package domain

import (
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	tracking "github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

// MealRecord is a read-only view of a logged meal.
type MealRecord struct {
	Type        tracking.MealType
	Name        string
	Calories    int
	Protein     int
	Ingredients string
	At          time.Time
	Completed   bool
}

// SupplementRecord is a read-only view of a supplement.
type SupplementRecord struct {
	Name       string
	TakenToday bool
	History    tracking.WeeklyHistory
}

// TrackerRecord is a read-only view of an addiction tracker.
type TrackerRecord struct {
	ID        uuid.UUID
	Name      string
	LastReset time.Time
}

// JournalRecord is a read-only view of a journal entry.
type JournalRecord struct {
	Date time.Time
	Mood tracking.Mood
}

// GoalRecord is a read-only view of a goal. StartedAt and CompletedAt are
// optional.
type GoalRecord struct {
	Title       string
	Completed   bool
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// RoutineRecord is a read-only view of a routine completion.
type RoutineRecord struct {
	Date       time.Time
	Percentage int
}

// Snapshot is the immutable input of every derived metric.
type Snapshot struct {
	Meals       []MealRecord
	Supplements []SupplementRecord
	Trackers    []TrackerRecord
	Journal     []JournalRecord
	Goals       []GoalRecord
	Routines    []RoutineRecord
}

// Fingerprint hashes the snapshot content. Equal snapshots share a
// fingerprint, so it can key memoized results together with the day.
func (s Snapshot) Fingerprint() uint64 {
	d := xxhash.New()
	w := func(parts ...string) {
		for _, p := range parts {
			_, _ = d.WriteString(p)
			_, _ = d.WriteString("\x1f")
		}
		_, _ = d.WriteString("\x1e")
	}

	w("meals", strconv.Itoa(len(s.Meals)))
	for _, m := range s.Meals {
		w(string(m.Type), m.Name, strconv.Itoa(m.Calories), strconv.Itoa(m.Protein),
			m.Ingredients, stamp(m.At), strconv.FormatBool(m.Completed))
	}
	w("supplements", strconv.Itoa(len(s.Supplements)))
	for _, sp := range s.Supplements {
		w(sp.Name, strconv.FormatBool(sp.TakenToday), sp.History.String())
	}
	w("trackers", strconv.Itoa(len(s.Trackers)))
	for _, t := range s.Trackers {
		w(t.ID.String(), t.Name, stamp(t.LastReset))
	}
	w("journal", strconv.Itoa(len(s.Journal)))
	for _, j := range s.Journal {
		w(stamp(j.Date), string(j.Mood))
	}
	w("goals", strconv.Itoa(len(s.Goals)))
	for _, g := range s.Goals {
		w(g.Title, strconv.FormatBool(g.Completed), stampPtr(g.StartedAt), stampPtr(g.CompletedAt))
	}
	w("routines", strconv.Itoa(len(s.Routines)))
	for _, r := range s.Routines {
		w(stamp(r.Date), strconv.Itoa(r.Percentage))
	}

	return d.Sum64()
}

func stamp(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}

func stampPtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return stamp(*t)
}
