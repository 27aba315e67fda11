package supplement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/phoenix/adapter/cli/clitest"
	"github.com/felixgeelhaar/phoenix/adapter/cli/supplement"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
)

func TestSupplementCommands(t *testing.T) {
	clitest.Setup(t)

	var added commands.AddSupplementResult
	clitest.RunJSON(t, &added, supplement.NewCmd(), "supplement", "add", "Vitamin D", "--dosage", "1000 IU")
	id := added.SupplementID.String()

	out := clitest.MustRun(t, supplement.NewCmd(), "supplement", "take", id)
	assert.Contains(t, out, "Took Vitamin D (1/7 days this week)")

	out = clitest.MustRun(t, supplement.NewCmd(), "supp", "take", id)
	assert.Contains(t, out, "Already taken today.")

	var pending []queries.SupplementDTO
	clitest.RunJSON(t, &pending, supplement.NewCmd(), "supplement", "list", "--pending")
	assert.Empty(t, pending)

	out = clitest.MustRun(t, supplement.NewCmd(), "supplement", "reset", "--scope", "day")
	assert.Contains(t, out, "Reset 1 supplement(s) for the new day.")

	clitest.RunJSON(t, &pending, supplement.NewCmd(), "supplement", "list", "--pending")
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].DaysTaken)

	clitest.MustRun(t, supplement.NewCmd(), "supplement", "reset", "--scope", "week")
	clitest.RunJSON(t, &pending, supplement.NewCmd(), "supplement", "list")
	require.Len(t, pending, 1)
	assert.Equal(t, 0, pending[0].DaysTaken)

	out = clitest.MustRun(t, supplement.NewCmd(), "supplement", "delete", id)
	assert.Contains(t, out, "Supplement deleted.")

	out = clitest.MustRun(t, supplement.NewCmd(), "supplement", "list")
	assert.Contains(t, out, "No supplements.")
}

func TestSupplementReset_RejectsUnknownScope(t *testing.T) {
	clitest.Setup(t)

	_, err := clitest.Run(t, supplement.NewCmd(), "supplement", "reset", "--scope", "month")
	assert.ErrorContains(t, err, "invalid scope")
}
