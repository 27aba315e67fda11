package domain

import (
	"math"
	"time"

	shared "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	tracking "github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

// ReportDays is the number of calendar days in a weekly report.
const ReportDays = 7

// Trend is the direction of a streak over the week.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// MoodTrend compares this week's mood with the previous week's.
type MoodTrend string

const (
	MoodImproving MoodTrend = "improving"
	MoodDeclining MoodTrend = "declining"
	MoodStable    MoodTrend = "stable"
)

const moodTrendThreshold = 0.3

// DayPoints is the activity of one report day.
type DayPoints struct {
	Date        time.Time
	Meals       int
	Supplements int
	Journals    int
	Points      int
}

// TrackerTrend is a tracker's streak against an estimate from a week ago.
type TrackerTrend struct {
	Name            string
	Current         int
	WeekAgoEstimate int
	Trend           Trend
}

// WeeklyReport summarizes the seven days ending on the report day.
type WeeklyReport struct {
	Start       time.Time
	End         time.Time
	Days        [ReportDays]DayPoints
	BestDay     DayPoints
	TotalPoints int
	Trackers    []TrackerTrend
	AvgCalories float64
	AvgProtein  float64
	// MoodThisWeek and MoodLastWeek are nil when the week has no mood data.
	MoodThisWeek *float64
	MoodLastWeek *float64
	MoodTrend    MoodTrend
	Tip          string
}

// tipRule yields its tip when the predicate holds. The first match wins.
type tipRule struct {
	applies func(r *WeeklyReport, meals int) bool
	tip     string
}

var tipRules = []tipRule{
	{
		applies: func(r *WeeklyReport, _ int) bool { return r.MoodTrend == MoodDeclining },
		tip:     "Your mood dipped this week. Try to get 15 minutes of sunlight each morning.",
	},
	{
		applies: func(r *WeeklyReport, _ int) bool {
			for _, t := range r.Trackers {
				if t.Trend == TrendDown {
					return true
				}
			}
			return false
		},
		tip: "A reset is not the end. Aim for progress, not perfection.",
	},
	{
		applies: func(r *WeeklyReport, meals int) bool { return meals > 0 && r.AvgCalories < 1200 },
		tip:     "Your meals averaged under 1200 calories. Make sure you're eating enough to fuel recovery.",
	},
	{
		applies: func(*WeeklyReport, int) bool { return true },
		tip:     "Keep showing up. Every logged day builds the next one.",
	},
}

// BuildWeeklyReport aggregates the seven calendar days ending on now's day.
func BuildWeeklyReport(now time.Time, s Snapshot) WeeklyReport {
	mealPts, _ := tracking.PointsFor(tracking.ReasonMealLogged)
	supplementPts, _ := tracking.PointsFor(tracking.ReasonSupplementTaken)
	journalPts, _ := tracking.PointsFor(tracking.ReasonJournalWritten)

	today := shared.StartOfDay(now)
	report := WeeklyReport{
		Start: shared.AddDays(today, -(ReportDays - 1)),
		End:   now,
	}

	for i := range report.Days {
		date := shared.AddDays(today, i-(ReportDays-1))
		d := DayPoints{Date: date}
		for _, m := range s.Meals {
			if shared.SameDay(date, m.At) {
				d.Meals++
			}
		}
		for _, sp := range s.Supplements {
			if sp.History.Taken(date.Weekday()) {
				d.Supplements++
			}
		}
		for _, j := range s.Journal {
			if shared.SameDay(date, j.Date) {
				d.Journals++
			}
		}
		d.Points = d.Meals*mealPts + d.Supplements*supplementPts + d.Journals*journalPts
		report.Days[i] = d
		report.TotalPoints += d.Points
	}

	report.BestDay = report.Days[0]
	for _, d := range report.Days[1:] {
		if d.Points > report.BestDay.Points {
			report.BestDay = d
		}
	}

	for _, t := range s.Trackers {
		report.Trackers = append(report.Trackers, trackerTrend(now, t))
	}

	var calories, protein, meals int
	for _, m := range s.Meals {
		if m.At.Before(report.Start) || m.At.After(now) {
			continue
		}
		calories += m.Calories
		protein += m.Protein
		meals++
	}
	if meals > 0 {
		report.AvgCalories = float64(calories) / float64(meals)
		report.AvgProtein = float64(protein) / float64(meals)
	}

	report.MoodThisWeek = meanMood(s.Journal, report.Start, now)
	report.MoodLastWeek = meanMood(s.Journal, shared.AddDays(report.Start, -ReportDays), report.Start.Add(-time.Nanosecond))
	report.MoodTrend = CompareMood(report.MoodThisWeek, report.MoodLastWeek)

	for _, r := range tipRules {
		if r.applies(&report, meals) {
			report.Tip = r.tip
			break
		}
	}
	return report
}

func trackerTrend(now time.Time, t TrackerRecord) TrackerTrend {
	current := DaysSince(now, t.LastReset)
	estimate := max(0, current-7)
	trend := TrendStable
	switch {
	case current > estimate+5:
		trend = TrendUp
	case current < estimate-2:
		trend = TrendDown
	}
	return TrackerTrend{Name: t.Name, Current: current, WeekAgoEstimate: estimate, Trend: trend}
}

// meanMood averages known moods dated within [from, to]. It is nil when
// there are none.
func meanMood(journal []JournalRecord, from, to time.Time) *float64 {
	var values []float64
	for _, j := range journal {
		if j.Date.Before(from) || j.Date.After(to) {
			continue
		}
		if v, ok := j.Mood.Value(); ok {
			values = append(values, float64(v))
		}
	}
	if len(values) == 0 {
		return nil
	}
	m := mean(values)
	return &m
}

// CompareMood classifies the change from last week to this week. A change
// of exactly 0.3 is stable, as is a week without mood data.
func CompareMood(thisWeek, lastWeek *float64) MoodTrend {
	if thisWeek == nil || lastWeek == nil {
		return MoodStable
	}
	// Rounded so that 3.3-3.0 and friends land exactly on the threshold.
	delta := math.Round((*thisWeek-*lastWeek)*1e9) / 1e9
	switch {
	case delta > moodTrendThreshold:
		return MoodImproving
	case delta < -moodTrendThreshold:
		return MoodDeclining
	default:
		return MoodStable
	}
}
