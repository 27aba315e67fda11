package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/insights/domain"
)

// ScoreDTO is the Rebirth Score with its four parts.
type ScoreDTO struct {
	Total      int     `json:"total"`
	Meal       float64 `json:"meal"`
	Streak     float64 `json:"streak"`
	Supplement float64 `json:"supplement"`
	Goal       float64 `json:"goal"`
}

// InsightDTO is one detected pattern.
type InsightDTO struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"` // pattern, warning, success
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Strength    float64 `json:"strength"`
}

// PredictionDTO is a probability estimate for tomorrow.
type PredictionDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Probability int      `json:"probability"`
	Factors     []string `json:"factors,omitempty"`
}

// DayDTO is one day of the weekly report.
type DayDTO struct {
	Date        string `json:"date"`
	Meals       int    `json:"meals"`
	Supplements int    `json:"supplements"`
	Journals    int    `json:"journals"`
	Points      int    `json:"points"`
}

// TrackerTrendDTO is a streak's direction over the week.
type TrackerTrendDTO struct {
	Name            string `json:"name"`
	Current         int    `json:"current"`
	WeekAgoEstimate int    `json:"week_ago_estimate"`
	Trend           string `json:"trend"`
}

// WeeklyReportDTO is the seven-day summary.
type WeeklyReportDTO struct {
	Start        string            `json:"start"`
	End          string            `json:"end"`
	Days         []DayDTO          `json:"days"`
	BestDay      string            `json:"best_day"`
	TotalPoints  int               `json:"total_points"`
	Trackers     []TrackerTrendDTO `json:"trackers,omitempty"`
	AvgCalories  float64           `json:"avg_calories"`
	AvgProtein   float64           `json:"avg_protein"`
	MoodThisWeek *float64          `json:"mood_this_week,omitempty"`
	MoodLastWeek *float64          `json:"mood_last_week,omitempty"`
	MoodTrend    string            `json:"mood_trend"`
	Tip          string            `json:"tip,omitempty"`
}

func registerInsightsTools(srv *mcp.Server, deps ToolDependencies) {
	srv.Tool("insights.score").
		Description("Get today's Rebirth Score (0-100) and its meal, streak, supplement and goal parts").
		Handler(scoreTool(deps.App))

	srv.Tool("insights.patterns").
		Description("Detect behavior patterns over the last 30 days").
		Handler(patternsTool(deps.App))

	srv.Tool("insights.predictions").
		Description("Estimate tomorrow's supplement, routine and craving outlook").
		Handler(predictionsTool(deps.App))

	srv.Tool("insights.weekly_report").
		Description("Summarize the last seven days: points per day, streak trends, nutrition, mood and a tip").
		Handler(weeklyReportTool(deps.App))
}

func scoreTool(app *cli.App) func(context.Context, struct{}) (*ScoreDTO, error) {
	return func(ctx context.Context, _ struct{}) (*ScoreDTO, error) {
		if err := requireInsights(app); err != nil {
			return nil, err
		}
		score, err := app.InsightsService.Score(ctx, app.CurrentUserID)
		if err != nil {
			return nil, err
		}
		return &ScoreDTO{
			Total:      score.Total,
			Meal:       round1(score.Meal),
			Streak:     round1(score.Streak),
			Supplement: round1(score.Supplement),
			Goal:       round1(score.Goal),
		}, nil
	}
}

func patternsTool(app *cli.App) func(context.Context, struct{}) ([]InsightDTO, error) {
	return func(ctx context.Context, _ struct{}) ([]InsightDTO, error) {
		if err := requireInsights(app); err != nil {
			return nil, err
		}
		insights, err := app.InsightsService.Patterns(ctx, app.CurrentUserID)
		if err != nil {
			return nil, err
		}
		result := make([]InsightDTO, 0, len(insights))
		for _, in := range insights {
			result = append(result, InsightDTO{
				ID:          in.ID,
				Type:        string(in.Type),
				Title:       in.Title,
				Description: in.Description,
				Strength:    in.Strength,
			})
		}
		return result, nil
	}
}

func predictionsTool(app *cli.App) func(context.Context, struct{}) ([]PredictionDTO, error) {
	return func(ctx context.Context, _ struct{}) ([]PredictionDTO, error) {
		if err := requireInsights(app); err != nil {
			return nil, err
		}
		predictions, err := app.InsightsService.Predictions(ctx, app.CurrentUserID)
		if err != nil {
			return nil, err
		}
		result := make([]PredictionDTO, 0, len(predictions))
		for _, p := range predictions {
			result = append(result, PredictionDTO{
				ID:          p.ID,
				Title:       p.Title,
				Probability: p.Probability,
				Factors:     p.Factors,
			})
		}
		return result, nil
	}
}

func weeklyReportTool(app *cli.App) func(context.Context, struct{}) (*WeeklyReportDTO, error) {
	return func(ctx context.Context, _ struct{}) (*WeeklyReportDTO, error) {
		if err := requireInsights(app); err != nil {
			return nil, err
		}
		report, err := app.InsightsService.WeeklyReport(ctx, app.CurrentUserID)
		if err != nil {
			return nil, err
		}
		return toWeeklyReportDTO(report), nil
	}
}

func toWeeklyReportDTO(r domain.WeeklyReport) *WeeklyReportDTO {
	dto := &WeeklyReportDTO{
		Start:        formatDate(r.Start),
		End:          formatDate(r.End),
		Days:         make([]DayDTO, 0, len(r.Days)),
		BestDay:      formatDate(r.BestDay.Date),
		TotalPoints:  r.TotalPoints,
		AvgCalories:  round1(r.AvgCalories),
		AvgProtein:   round1(r.AvgProtein),
		MoodThisWeek: r.MoodThisWeek,
		MoodLastWeek: r.MoodLastWeek,
		MoodTrend:    string(r.MoodTrend),
		Tip:          r.Tip,
	}
	for _, d := range r.Days {
		dto.Days = append(dto.Days, DayDTO{
			Date:        formatDate(d.Date),
			Meals:       d.Meals,
			Supplements: d.Supplements,
			Journals:    d.Journals,
			Points:      d.Points,
		})
	}
	for _, t := range r.Trackers {
		dto.Trackers = append(dto.Trackers, TrackerTrendDTO{
			Name:            t.Name,
			Current:         t.Current,
			WeekAgoEstimate: t.WeekAgoEstimate,
			Trend:           string(t.Trend),
		})
	}
	return dto
}
