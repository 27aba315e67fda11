package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterResources registers MCP resources that expose Phoenix data.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App

	jsonResource(srv, "phoenix://score/today", "Rebirth Score", "Today's Rebirth Score",
		func(ctx context.Context) (any, error) { return scoreTool(app)(ctx, struct{}{}) })

	jsonResource(srv, "phoenix://report/weekly", "Weekly Report", "Summary of the last seven days",
		func(ctx context.Context) (any, error) { return weeklyReportTool(app)(ctx, struct{}{}) })

	jsonResource(srv, "phoenix://streaks", "Streaks", "Every addiction tracker and its streak",
		func(ctx context.Context) (any, error) { return streakListTool(app)(ctx, struct{}{}) })

	jsonResource(srv, "phoenix://points", "Phoenix Points", "Points balance and the latest awards",
		func(ctx context.Context) (any, error) { return pointsSummary(ctx, app) })

	return nil
}

// jsonResource registers a resource whose content is load's result as JSON.
func jsonResource(srv *mcp.Server, uri, name, description string, load func(context.Context) (any, error)) {
	srv.Resource(uri).
		Name(name).
		Description(description).
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			v, err := load(ctx)
			if err != nil {
				return nil, err
			}

			data, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return nil, err
			}

			return &mcp.ResourceContent{
				URI:      uri,
				MimeType: "application/json",
				Text:     string(data),
			}, nil
		})
}
