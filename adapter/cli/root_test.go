package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireApp(t *testing.T) {
	SetApp(nil)
	_, err := RequireApp()
	assert.ErrorIs(t, err, ErrNotInitialized)

	a := &App{}
	SetApp(a)
	defer SetApp(nil)

	got, err := RequireApp()
	require.NoError(t, err)
	assert.Same(t, a, got)
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	a := &App{Location: loc}

	got, err := a.ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = a.ParseDate("2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, loc), *got)

	got, err = a.ParseDate("2026-03-11 19:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 11, 19, 30, 0, 0, loc), *got)

	got, err = a.ParseDate("2026-03-11T18:30:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 3, 11, 19, 30, 0, 0, loc)))
	assert.Equal(t, loc, got.Location())

	_, err = a.ParseDate("tomorrow")
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	_, err := ParseID("meal", "nope")
	assert.ErrorContains(t, err, "invalid meal ID")

	id, err := ParseID("meal", "00000000-0000-0000-0000-000000000001")
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", id.String())
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "phoenix dev")
}

func TestAfterCommandRunsOnce(t *testing.T) {
	calls := 0
	SetApp(&App{AfterCommand: func(context.Context) { calls++ }})
	defer SetApp(nil)

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, 1, calls)
}
