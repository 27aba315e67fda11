package domain

import (
	"math"
	"time"

	shared "github.com/felixgeelhaar/phoenix/internal/shared/domain"
)

// Prediction is a naive probability estimate in percent.
type Prediction struct {
	ID          string
	Title       string
	Probability int
	Factors     []string
}

// predictionInput is what the rule predicates look at.
type predictionInput struct {
	now      time.Time
	snapshot Snapshot
}

func (in predictionInput) tomorrow() time.Weekday {
	return shared.AddDays(in.now, 1).Weekday()
}

// rule multiplies the running probability when its predicate holds.
type rule struct {
	name       string
	applies    func(in predictionInput) bool
	multiplier float64
}

type predictor struct {
	id    string
	title string
	// base returns the starting rate. ok is false when the population is
	// empty and the prediction must be omitted.
	base   func(in predictionInput) (float64, bool)
	rules  []rule
	lo, hi float64
}

var (
	tomorrowWeekend = rule{
		name:       "tomorrow is a weekend day",
		applies:    func(in predictionInput) bool { return shared.IsWeekend(in.tomorrow()) },
		multiplier: 0.7,
	}
	tomorrowMonday = rule{
		name:       "tomorrow is Monday",
		applies:    func(in predictionInput) bool { return in.tomorrow() == time.Monday },
		multiplier: 1.3,
	}
)

var predictors = []predictor{
	{
		id:    "supplements-tomorrow",
		title: "You'll take your supplements tomorrow",
		base:  supplementComplianceBase,
		rules: []rule{
			tomorrowWeekend,
			tomorrowMonday,
			{
				name:       "all supplements taken today",
				applies:    allSupplementsTaken,
				multiplier: 1.1,
			},
		},
		lo: 10, hi: 95,
	},
	{
		id:    "exercise-tomorrow",
		title: "You'll complete your routine tomorrow",
		base:  routineCompletionBase,
		rules: []rule{
			tomorrowWeekend,
			tomorrowMonday,
			{
				name:       "no routine in the last 3 days",
				applies:    noRecentRoutine,
				multiplier: 0.8,
			},
		},
		lo: 10, hi: 95,
	},
	{
		id:    "craving-risk-today",
		title: "Craving risk today",
		base: func(in predictionInput) (float64, bool) {
			return 50, len(in.snapshot.Trackers) > 0
		},
		rules: []rule{
			{
				name:       "evening hours",
				applies:    func(in predictionInput) bool { return in.now.Hour() >= 18 },
				multiplier: 1.3,
			},
			{
				name:       "it's the weekend",
				applies:    func(in predictionInput) bool { return shared.IsWeekend(in.now.Weekday()) },
				multiplier: 1.2,
			},
			{
				name:       "recent mood is low",
				applies:    lowRecentMood,
				multiplier: 1.25,
			},
			{
				name: "streak is under a week",
				applies: func(in predictionInput) bool {
					d, ok := shortestStreak(in.now, in.snapshot.Trackers)
					return ok && d < 7
				},
				multiplier: 1.2,
			},
			{
				name: "streak is over a month",
				applies: func(in predictionInput) bool {
					d, ok := shortestStreak(in.now, in.snapshot.Trackers)
					return ok && d > 30
				},
				multiplier: 0.7,
			},
		},
		lo: 5, hi: 90,
	},
}

// Predict evaluates every predictor whose population is non-empty.
func Predict(now time.Time, s Snapshot) []Prediction {
	in := predictionInput{now: now, snapshot: s}
	predictions := []Prediction{}
	for _, p := range predictors {
		rate, ok := p.base(in)
		if !ok {
			continue
		}
		factors := []string{}
		for _, r := range p.rules {
			if r.applies(in) {
				rate *= r.multiplier
				factors = append(factors, r.name)
			}
		}
		predictions = append(predictions, Prediction{
			ID:          p.id,
			Title:       p.title,
			Probability: int(math.Round(clamp(rate, p.lo, p.hi))),
			Factors:     factors,
		})
	}
	return predictions
}

func supplementComplianceBase(in predictionInput) (float64, bool) {
	sups := in.snapshot.Supplements
	if len(sups) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, s := range sups {
		sum += WeeklyCompliance(s.History)
	}
	return sum / float64(len(sups)), true
}

func allSupplementsTaken(in predictionInput) bool {
	for _, s := range in.snapshot.Supplements {
		if !s.TakenToday {
			return false
		}
	}
	return len(in.snapshot.Supplements) > 0
}

func routinesSince(in predictionInput, days int) []RoutineRecord {
	since := shared.AddDays(shared.StartOfDay(in.now), -(days - 1))
	var out []RoutineRecord
	for _, r := range in.snapshot.Routines {
		if !r.Date.Before(since) && !r.Date.After(in.now) {
			out = append(out, r)
		}
	}
	return out
}

func routineCompletionBase(in predictionInput) (float64, bool) {
	recent := routinesSince(in, 7)
	if len(recent) == 0 {
		return 0, false
	}
	sum := 0
	for _, r := range recent {
		sum += r.Percentage
	}
	return float64(sum) / float64(len(recent)), true
}

func noRecentRoutine(in predictionInput) bool {
	return len(routinesSince(in, 3)) == 0
}

// lowRecentMood looks at journal moods from the last three days.
func lowRecentMood(in predictionInput) bool {
	since := shared.AddDays(shared.StartOfDay(in.now), -2)
	var values []float64
	for _, j := range in.snapshot.Journal {
		if j.Date.Before(since) || j.Date.After(in.now) {
			continue
		}
		if v, ok := j.Mood.Value(); ok {
			values = append(values, float64(v))
		}
	}
	return len(values) > 0 && mean(values) < 3
}
