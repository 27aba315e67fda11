package goal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/phoenix/adapter/cli/clitest"
	"github.com/felixgeelhaar/phoenix/adapter/cli/goal"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
)

func TestGoalCommands(t *testing.T) {
	clitest.Setup(t)

	var created commands.CreateGoalResult
	clitest.RunJSON(t, &created, goal.NewCmd(), "goal", "create", "Run a 5k", "--started", "2026-03-10 07:00")
	clitest.MustRun(t, goal.NewCmd(), "goal", "add", "Read 12 books")

	out := clitest.MustRun(t, goal.NewCmd(), "goal", "complete", created.GoalID.String())
	assert.Contains(t, out, "Goal completed.")

	out = clitest.MustRun(t, goal.NewCmd(), "goal", "done", created.GoalID.String())
	assert.Contains(t, out, "Goal was already completed.")

	var goals []queries.GoalDTO
	clitest.RunJSON(t, &goals, goal.NewCmd(), "goal", "list")
	require.Len(t, goals, 1)
	assert.Equal(t, "Read 12 books", goals[0].Title)

	clitest.RunJSON(t, &goals, goal.NewCmd(), "goal", "list", "--all")
	assert.Len(t, goals, 2)
}
