package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
)

// GroceryItemDTO is an ingredient and the number of meals that used it.
type GroceryItemDTO struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func registerGroceryTools(srv *mcp.Server, deps ToolDependencies) {
	srv.Tool("grocery.list").
		Description("Aggregate the ingredients of the last seven days of meals, most used first").
		Handler(groceryListTool(deps.App))
}

func groceryListTool(app *cli.App) func(context.Context, struct{}) ([]GroceryItemDTO, error) {
	return func(ctx context.Context, _ struct{}) ([]GroceryItemDTO, error) {
		if err := requireInsights(app); err != nil {
			return nil, err
		}
		items, err := app.InsightsService.GroceryList(ctx, app.CurrentUserID)
		if err != nil {
			return nil, err
		}
		result := make([]GroceryItemDTO, 0, len(items))
		for _, it := range items {
			result = append(result, GroceryItemDTO{Name: it.Name, Count: it.Count})
		}
		return result, nil
	}
}
