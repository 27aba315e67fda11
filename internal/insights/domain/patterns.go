package domain

import (
	"fmt"
	"math"
	"time"

	shared "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	tracking "github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

// InsightType classifies an insight.
type InsightType string

const (
	InsightPattern InsightType = "pattern"
	InsightWarning InsightType = "warning"
	InsightSuccess InsightType = "success"
)

// Insight is one triggered heuristic. Strength is in [0,1].
type Insight struct {
	ID          string
	Type        InsightType
	Title       string
	Description string
	Strength    float64
}

// PatternWindowDays is the trailing window the heuristics look at.
const PatternWindowDays = 30

// heuristic inspects a window and reports an insight when its trigger fires.
type heuristic func(w window) (Insight, bool)

// heuristics run in this order; each is independent of the others.
var heuristics = []heuristic{
	mealTimingSkew,
	moodWeekdayDip,
	goalWeekdayPeak,
	goalMorningSuccess,
	supplementWeekendGap,
	journalMoodStability,
}

// window is the slice of a snapshot inside [since, now].
type window struct {
	now         time.Time
	since       time.Time
	days        int
	meals       []MealRecord
	journal     []JournalRecord
	goals       []GoalRecord
	supplements []SupplementRecord
}

func newWindow(now time.Time, days int, s Snapshot) window {
	since := shared.AddDays(shared.StartOfDay(now), -(days - 1))
	w := window{now: now, since: since, days: days, goals: s.Goals, supplements: s.Supplements}
	for _, m := range s.Meals {
		if w.contains(m.At) {
			w.meals = append(w.meals, m)
		}
	}
	for _, j := range s.Journal {
		if w.contains(j.Date) {
			w.journal = append(w.journal, j)
		}
	}
	return w
}

func (w window) contains(t time.Time) bool {
	return !t.Before(w.since) && !t.After(w.now)
}

func (w window) containsPtr(t *time.Time) bool {
	return t != nil && w.contains(*t)
}

// local moves t into now's location. Stored times may come back in UTC.
func (w window) local(t time.Time) time.Time {
	return t.In(w.now.Location())
}

// DetectPatterns runs every heuristic over the trailing 30 days.
func DetectPatterns(now time.Time, s Snapshot) []Insight {
	w := newWindow(now, PatternWindowDays, s)
	insights := []Insight{}
	for _, h := range heuristics {
		if insight, ok := h(w); ok {
			insights = append(insights, insight)
		}
	}
	return insights
}

func percent(subset, total int) float64 {
	return float64(subset) / float64(total) * 100
}

func mealTimingSkew(w window) (Insight, bool) {
	total := len(w.meals)
	if total < 5 {
		return Insight{}, false
	}

	var breakfasts, snacks int
	for _, m := range w.meals {
		switch m.Type {
		case tracking.MealBreakfast:
			breakfasts++
		case tracking.MealSnack:
			snacks++
		}
	}

	if share := percent(breakfasts, total); share < 20 {
		return Insight{
			ID:          "meal-timing-skew",
			Type:        InsightWarning,
			Title:       "Breakfast is rare",
			Description: fmt.Sprintf("Only %.0f%% of your %d meals were breakfasts. A morning meal steadies energy and cravings.", share, total),
			Strength:    clamp((20-share)/20, 0, 1),
		}, true
	}
	if share := percent(snacks, total); share > 40 {
		return Insight{
			ID:          "meal-timing-skew",
			Type:        InsightPattern,
			Title:       "Snacking dominates",
			Description: fmt.Sprintf("%.0f%% of your %d meals were snacks.", share, total),
			Strength:    clamp((share-40)/60, 0, 1),
		}, true
	}
	return Insight{}, false
}

func moodWeekdayDip(w window) (Insight, bool) {
	var sums, counts [7]int
	for _, j := range w.journal {
		v, ok := j.Mood.Value()
		if !ok {
			continue
		}
		wd := w.local(j.Date).Weekday()
		sums[wd] += v
		counts[wd]++
	}

	lowest, lowestMean := -1, 0.0
	for wd := range sums {
		if counts[wd] < 2 {
			continue
		}
		mean := float64(sums[wd]) / float64(counts[wd])
		if lowest < 0 || mean < lowestMean {
			lowest, lowestMean = wd, mean
		}
	}
	if lowest < 0 || lowestMean >= 3 {
		return Insight{}, false
	}

	name := time.Weekday(lowest).String()
	return Insight{
		ID:          "mood-weekday-dip",
		Type:        InsightPattern,
		Title:       name + "s feel heavier",
		Description: fmt.Sprintf("Your average mood on %ss is %.1f out of 5.", name, lowestMean),
		Strength:    clamp((3-lowestMean)/2, 0, 1),
	}, true
}

func goalWeekdayPeak(w window) (Insight, bool) {
	var counts [7]int
	total := 0
	for _, g := range w.goals {
		if !g.Completed || !w.containsPtr(g.CompletedAt) {
			continue
		}
		counts[w.local(*g.CompletedAt).Weekday()]++
		total++
	}
	if total < 4 {
		return Insight{}, false
	}

	peak := 0
	for wd := range counts {
		if counts[wd] > counts[peak] {
			peak = wd
		}
	}
	share := percent(counts[peak], total)
	if share <= 40 {
		return Insight{}, false
	}

	name := time.Weekday(peak).String()
	return Insight{
		ID:          "goal-weekday-peak",
		Type:        InsightSuccess,
		Title:       name + " is your power day",
		Description: fmt.Sprintf("%.0f%% of your %d completed goals were finished on a %s.", share, total, name),
		Strength:    share / 100,
	}, true
}

func goalMorningSuccess(w window) (Insight, bool) {
	var morning, completed int
	for _, g := range w.goals {
		if !w.containsPtr(g.StartedAt) || w.local(*g.StartedAt).Hour() >= 12 {
			continue
		}
		morning++
		if g.Completed {
			completed++
		}
	}
	if morning < 3 {
		return Insight{}, false
	}

	rate := float64(completed) / float64(morning)
	if rate <= 0.7 {
		return Insight{}, false
	}
	return Insight{
		ID:          "goal-morning-success",
		Type:        InsightSuccess,
		Title:       "Mornings work for you",
		Description: fmt.Sprintf("You completed %d of %d goals you started before noon.", completed, morning),
		Strength:    rate,
	}, true
}

func supplementWeekendGap(w window) (Insight, bool) {
	n := len(w.supplements)
	if n == 0 {
		return Insight{}, false
	}

	var weekday, weekend int
	for _, s := range w.supplements {
		for d := time.Sunday; d <= time.Saturday; d++ {
			if !s.History.Taken(d) {
				continue
			}
			if shared.IsWeekend(d) {
				weekend++
			} else {
				weekday++
			}
		}
	}

	weekdayRate := float64(weekday) / float64(5*n)
	weekendRate := float64(weekend) / float64(2*n)
	gap := weekdayRate - weekendRate
	if gap <= 0.2 {
		return Insight{}, false
	}
	return Insight{
		ID:          "supplement-weekend-gap",
		Type:        InsightWarning,
		Title:       "Weekends slip",
		Description: fmt.Sprintf("You take %.0f%% of supplements on weekdays but %.0f%% on weekends.", weekdayRate*100, weekendRate*100),
		Strength:    clamp(gap, 0, 1),
	}, true
}

func journalMoodStability(w window) (Insight, bool) {
	values := make([]float64, 0, len(w.journal))
	days := map[time.Time]struct{}{}
	for _, j := range w.journal {
		v, ok := j.Mood.Value()
		if !ok {
			continue
		}
		values = append(values, float64(v))
		days[shared.StartOfDay(w.local(j.Date))] = struct{}{}
	}
	if len(values) < 5 {
		return Insight{}, false
	}

	ratio := float64(len(days)) / float64(w.days)
	sd := stdDev(values)
	if ratio < 0.5 || sd >= 1.0 {
		return Insight{}, false
	}
	return Insight{
		ID:          "journal-mood-stability",
		Type:        InsightSuccess,
		Title:       "Journaling keeps you steady",
		Description: fmt.Sprintf("You journaled on %d of the last %d days and your mood varied by only %.2f points.", len(days), w.days, sd),
		Strength:    clamp(ratio, 0, 1),
	}, true
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)))
}
