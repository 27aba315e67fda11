package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tracking "github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

func TestBuildWeeklyReport_Points(t *testing.T) {
	var wednesday tracking.WeeklyHistory
	wednesday.Mark(time.Wednesday)

	s := Snapshot{
		Meals: []MealRecord{{Type: tracking.MealLunch, At: daysAgo(0, 8)}},
		Supplements: []SupplementRecord{
			{Name: "a", History: wednesday},
			{Name: "b", History: wednesday},
			{Name: "c", History: wednesday},
		},
	}

	report := BuildWeeklyReport(testNow, s)

	assert.Equal(t, daysAgo(6, 0), report.Start)
	assert.Equal(t, daysAgo(0, 0), report.Days[6].Date)
	assert.Equal(t, 11, report.Days[6].Points)
	assert.Equal(t, 1, report.Days[6].Meals)
	assert.Equal(t, 3, report.Days[6].Supplements)
	assert.Equal(t, 11, report.TotalPoints)
	assert.Equal(t, daysAgo(0, 0), report.BestDay.Date)
}

func TestBuildWeeklyReport_BestDay(t *testing.T) {
	meals := []MealRecord{
		{At: daysAgo(2, 8)},
		{At: daysAgo(5, 8)},
		{At: daysAgo(9, 8)},
	}
	reversed := []MealRecord{meals[2], meals[1], meals[0]}

	t.Run("ties go to the earliest day", func(t *testing.T) {
		report := BuildWeeklyReport(testNow, Snapshot{Meals: meals})
		assert.Equal(t, daysAgo(5, 0), report.BestDay.Date)
		assert.Equal(t, 5, report.BestDay.Points)
		assert.Equal(t, 10, report.TotalPoints)
	})

	t.Run("stable under reordering", func(t *testing.T) {
		a := BuildWeeklyReport(testNow, Snapshot{Meals: meals})
		b := BuildWeeklyReport(testNow, Snapshot{Meals: reversed})
		assert.Equal(t, a.BestDay, b.BestDay)
		assert.Equal(t, a.Days, b.Days)
	})

	t.Run("empty week picks the first day", func(t *testing.T) {
		report := BuildWeeklyReport(testNow, Snapshot{})
		assert.Equal(t, daysAgo(6, 0), report.BestDay.Date)
		assert.Equal(t, 0, report.TotalPoints)
	})

	t.Run("journals are worth fifteen", func(t *testing.T) {
		report := BuildWeeklyReport(testNow, Snapshot{
			Meals:   meals,
			Journal: []JournalRecord{{Date: daysAgo(2, 21), Mood: tracking.MoodGood}},
		})
		assert.Equal(t, daysAgo(2, 0), report.BestDay.Date)
		assert.Equal(t, 20, report.BestDay.Points)
	})
}

func TestBuildWeeklyReport_TrackerTrends(t *testing.T) {
	s := Snapshot{Trackers: []TrackerRecord{
		{Name: "smoking", LastReset: testNow.Add(-10 * 24 * time.Hour)},
		{Name: "sugar", LastReset: testNow.Add(-3 * 24 * time.Hour)},
		{Name: "soda", LastReset: testNow.Add(-6 * 24 * time.Hour)},
	}}

	report := BuildWeeklyReport(testNow, s)
	require.Len(t, report.Trackers, 3)

	assert.Equal(t, TrackerTrend{Name: "smoking", Current: 10, WeekAgoEstimate: 3, Trend: TrendUp}, report.Trackers[0])
	assert.Equal(t, TrackerTrend{Name: "sugar", Current: 3, WeekAgoEstimate: 0, Trend: TrendStable}, report.Trackers[1])
	assert.Equal(t, TrendUp, report.Trackers[2].Trend)
}

func TestBuildWeeklyReport_Averages(t *testing.T) {
	s := Snapshot{Meals: []MealRecord{
		{Calories: 500, Protein: 20, At: daysAgo(1, 8)},
		{Calories: 700, Protein: 30, At: daysAgo(3, 8)},
		{Calories: 3000, Protein: 90, At: daysAgo(10, 8)},
	}}

	report := BuildWeeklyReport(testNow, s)
	assert.Equal(t, 600.0, report.AvgCalories)
	assert.Equal(t, 25.0, report.AvgProtein)

	empty := BuildWeeklyReport(testNow, Snapshot{})
	assert.Equal(t, 0.0, empty.AvgCalories)
	assert.Equal(t, 0.0, empty.AvgProtein)
}

func TestCompareMood(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name     string
		thisWeek *float64
		lastWeek *float64
		expected MoodTrend
	}{
		{"boundary up is stable", f(3.3), f(3.0), MoodStable},
		{"boundary down is stable", f(2.7), f(3.0), MoodStable},
		{"just above boundary", f(3.31), f(3.0), MoodImproving},
		{"just below boundary", f(2.69), f(3.0), MoodDeclining},
		{"no data this week", nil, f(3.0), MoodStable},
		{"no data last week", f(4.0), nil, MoodStable},
		{"unchanged", f(4.0), f(4.0), MoodStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompareMood(tt.thisWeek, tt.lastWeek))
		})
	}
}

func TestBuildWeeklyReport_Mood(t *testing.T) {
	s := Snapshot{Journal: []JournalRecord{
		{Date: daysAgo(1, 20), Mood: tracking.MoodGood},
		{Date: daysAgo(3, 20), Mood: tracking.MoodGreat},
		{Date: daysAgo(8, 20), Mood: tracking.MoodOkay},
		{Date: daysAgo(20, 20), Mood: tracking.MoodAwful},
	}}

	report := BuildWeeklyReport(testNow, s)
	require.NotNil(t, report.MoodThisWeek)
	require.NotNil(t, report.MoodLastWeek)
	assert.Equal(t, 4.5, *report.MoodThisWeek)
	assert.Equal(t, 3.0, *report.MoodLastWeek)
	assert.Equal(t, MoodImproving, report.MoodTrend)
}

func TestBuildWeeklyReport_Tip(t *testing.T) {
	tests := []struct {
		name     string
		snapshot Snapshot
		expected string
	}{
		{
			name: "declining mood",
			snapshot: Snapshot{
				Journal: []JournalRecord{
					{Date: daysAgo(1, 20), Mood: tracking.MoodLow},
					{Date: daysAgo(8, 20), Mood: tracking.MoodGood},
				},
				Meals: []MealRecord{{Calories: 400, At: daysAgo(1, 8)}},
			},
			expected: tipRules[0].tip,
		},
		{
			name:     "under-eating",
			snapshot: Snapshot{Meals: []MealRecord{{Calories: 800, At: daysAgo(1, 8)}}},
			expected: tipRules[2].tip,
		},
		{
			name:     "generic",
			snapshot: Snapshot{},
			expected: tipRules[3].tip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildWeeklyReport(testNow, tt.snapshot).Tip)
		})
	}
}
