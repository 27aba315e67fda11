// Package clitest runs CLI command groups against an in-memory application.
package clitest

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/phoenix/adapter/cli"
	internalApp "github.com/felixgeelhaar/phoenix/internal/app"
	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/pkg/config"
	"github.com/felixgeelhaar/phoenix/pkg/observability"
)

// UserID is the user every test command runs as.
const UserID = "00000000-0000-0000-0000-000000000001"

// Now is the initial clock time: Wednesday 2026-03-11 08:00 UTC.
var Now = time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)

// Env is an installed test application.
type Env struct {
	App       *cli.App
	Container *internalApp.Container
	Clock     *sharedDomain.FixedClock
}

// Setup installs an in-memory application as the global CLI app and removes
// it when the test ends.
func Setup(t *testing.T) *Env {
	t.Helper()

	cfg := &config.Config{
		AppEnv:   "test",
		UserID:   UserID,
		Timezone: "UTC",
	}
	clock := sharedDomain.NewFixedClock(Now)

	container, err := internalApp.NewMemoryContainer(cfg, observability.NewTestLogger(), clock)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	app := cli.NewApp(container)
	cli.SetApp(app)
	t.Cleanup(func() { cli.SetApp(nil) })

	return &Env{App: app, Container: container, Clock: clock}
}

// Run executes group under a fresh root command and returns its output.
func Run(t *testing.T, group *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := cli.NewRootCmd()
	root.AddCommand(group)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// MustRun is Run that fails the test on error.
func MustRun(t *testing.T, group *cobra.Command, args ...string) string {
	t.Helper()

	out, err := Run(t, group, args...)
	require.NoError(t, err, out)
	return out
}

// RunJSON executes group with --json and decodes the output into v.
func RunJSON(t *testing.T, v any, group *cobra.Command, args ...string) {
	t.Helper()

	out := MustRun(t, group, append(args, "--json")...)
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}
