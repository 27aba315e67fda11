package journal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/phoenix/adapter/cli/clitest"
	"github.com/felixgeelhaar/phoenix/adapter/cli/journal"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
)

func TestJournalCommands(t *testing.T) {
	clitest.Setup(t)

	out := clitest.MustRun(t, journal.NewCmd(), "journal", "write",
		"--mood", "good", "--reflection", "Long walk after work")
	assert.Contains(t, out, "Journal entry saved (mood: good)")

	clitest.MustRun(t, journal.NewCmd(), "journal", "write",
		"--mood", "2", "--triggers", "stress", "--date", "2026-03-09")

	var entries []queries.JournalEntryDTO
	clitest.RunJSON(t, &entries, journal.NewCmd(), "journal", "list")
	require.Len(t, entries, 2)
	assert.Equal(t, "good", entries[0].Mood)
	assert.Equal(t, 4, entries[0].MoodValue)
	assert.Equal(t, "low", entries[1].Mood)
	assert.Equal(t, "stress", entries[1].Triggers)
}

func TestJournalWrite_RejectsUnknownMood(t *testing.T) {
	clitest.Setup(t)

	_, err := clitest.Run(t, journal.NewCmd(), "journal", "write", "--mood", "ecstatic")
	assert.Error(t, err)

	_, err = clitest.Run(t, journal.NewCmd(), "journal", "write")
	assert.Error(t, err)
}
