package routine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/phoenix/adapter/cli/clitest"
	"github.com/felixgeelhaar/phoenix/adapter/cli/routine"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
)

func TestRoutineCommands(t *testing.T) {
	clitest.Setup(t)

	out := clitest.MustRun(t, routine.NewCmd(), "routine", "log")
	assert.Contains(t, out, "Routine complete!")

	out = clitest.MustRun(t, routine.NewCmd(), "routine", "log", "--name", "stretching", "--percent", "60", "--date", "2026-03-10")
	assert.Contains(t, out, "Routine logged at 60%.")

	var completions []queries.RoutineDTO
	clitest.RunJSON(t, &completions, routine.NewCmd(), "routine", "list")
	require.Len(t, completions, 2)

	_, err := clitest.Run(t, routine.NewCmd(), "routine", "log", "--percent", "120")
	assert.Error(t, err)
}
