package mcp

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/mcp-go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/phoenix/adapter/cli/clitest"
	"github.com/felixgeelhaar/phoenix/pkg/config"
	"github.com/felixgeelhaar/phoenix/pkg/observability"
)

func TestNewServer_RegistersMetricsTools(t *testing.T) {
	env := clitest.Setup(t)

	srv, err := NewServer(NewCLIApp(env.Container), observability.NewTestLogger())
	require.NoError(t, err)

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	tools, err := tc.ListTools()
	require.NoError(t, err)
	assert.Len(t, tools, 6)
}

func TestServe_RequiresDependencies(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, Serve(ctx, nil, nil, nil))
	assert.Error(t, Serve(ctx, &config.Config{}, nil, nil))
}
