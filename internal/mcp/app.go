package mcp

import (
	"github.com/felixgeelhaar/phoenix/adapter/cli"
	"github.com/felixgeelhaar/phoenix/internal/app"
)

// NewCLIApp creates the application the MCP tools read from.
func NewCLIApp(container *app.Container) *cli.App {
	cliApp := cli.NewApp(container)
	cliApp.SetCurrentUserID(container.UserID)
	return cliApp
}
