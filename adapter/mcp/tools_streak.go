package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
)

// StreakDTO is an addiction tracker's current streak.
type StreakDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Days          int    `json:"days"`
	Milestone     bool   `json:"milestone"`
	NextMilestone int    `json:"next_milestone"`
	LastReset     string `json:"last_reset"`
}

func registerStreakTools(srv *mcp.Server, deps ToolDependencies) {
	srv.Tool("streak.list").
		Description("List addiction trackers with their streak in days and the next milestone").
		Handler(streakListTool(deps.App))
}

func streakListTool(app *cli.App) func(context.Context, struct{}) ([]StreakDTO, error) {
	return func(ctx context.Context, _ struct{}) ([]StreakDTO, error) {
		if err := requireInsights(app); err != nil {
			return nil, err
		}
		streaks, err := app.InsightsService.Streaks(ctx, app.CurrentUserID)
		if err != nil {
			return nil, err
		}
		result := make([]StreakDTO, 0, len(streaks))
		for _, s := range streaks {
			result = append(result, StreakDTO{
				ID:            s.TrackerID.String(),
				Name:          s.Name,
				Days:          s.Days,
				Milestone:     s.Milestone,
				NextMilestone: s.NextMilestone,
				LastReset:     formatDate(s.LastReset),
			})
		}
		return result, nil
	}
}
