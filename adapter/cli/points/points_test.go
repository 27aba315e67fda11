package points_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/phoenix/adapter/cli/clitest"
	"github.com/felixgeelhaar/phoenix/adapter/cli/goal"
	"github.com/felixgeelhaar/phoenix/adapter/cli/journal"
	"github.com/felixgeelhaar/phoenix/adapter/cli/meal"
	"github.com/felixgeelhaar/phoenix/adapter/cli/points"
	"github.com/felixgeelhaar/phoenix/adapter/cli/routine"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

func TestPointsAccumulateAcrossCommands(t *testing.T) {
	clitest.Setup(t)

	clitest.MustRun(t, meal.NewCmd(), "meal", "log", "Oatmeal", "--type", "breakfast")
	clitest.MustRun(t, journal.NewCmd(), "journal", "write", "--mood", "great")
	clitest.MustRun(t, routine.NewCmd(), "routine", "log", "--percent", "50")
	clitest.MustRun(t, routine.NewCmd(), "routine", "log", "--percent", "100")

	var created commands.CreateGoalResult
	clitest.RunJSON(t, &created, goal.NewCmd(), "goal", "create", "Meditate")
	clitest.MustRun(t, goal.NewCmd(), "goal", "complete", created.GoalID.String())

	var ledger domain.Ledger
	clitest.RunJSON(t, &ledger, points.NewCmd(), "points", "--recent", "2")
	assert.Equal(t, 5+15+10+20, ledger.Total)
	require.Len(t, ledger.Recent, 2)

	out := clitest.MustRun(t, points.NewCmd(), "points")
	assert.Contains(t, out, "Phoenix Points: 50")
}
