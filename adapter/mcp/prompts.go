package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common Phoenix workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("daily_checkin").
		Description("Review today's Rebirth Score and streaks and pick one thing to improve before the day ends.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Daily Check-in", `Help me check in on my day. Please:

1. Read my Rebirth Score using the insights.score tool
2. List my streaks using the streak.list tool
3. Look at tomorrow's outlook using the insights.predictions tool

Then tell me:
- Which part of my score is lowest and one concrete action to raise it today
- Which streak is closest to its next milestone
- Anything the predictions suggest I prepare for tonight

Keep it short and encouraging.`), nil
		})

	srv.Prompt("weekly_reflection").
		Description("Reflect on the past week using the weekly report and detected patterns.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Weekly Reflection", `Let's reflect on my week. Please:

1. Read the weekly report using the insights.weekly_report tool
2. Review patterns using the insights.patterns tool
3. Check my points using the phoenix://points resource

Help me understand:

**What went well:** my best day, streaks trending up, mood changes
**What was hard:** warnings among the patterns, streaks that were reset
**Next week:** two small goals based on the report's tip

Be kind. Resets are part of the process.`), nil
		})

	srv.Prompt("meal_planning").
		Description("Plan next week's meals from the ingredients used this week.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Meal Planning", `Help me plan meals for next week. Please:

1. Get this week's ingredients using the grocery.list tool
2. Check average calories and protein in the insights.weekly_report tool

Suggest a simple plan that reuses the ingredients I already buy and
keeps protein at or above this week's average. Finish with a grocery
checklist.`), nil
		})

	return nil
}

func userPrompt(description, text string) *mcp.PromptResult {
	return &mcp.PromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: string(mcp.RoleUser),
				Content: mcp.TextContent{
					Type: "text",
					Text: text,
				},
			},
		},
	}
}
