package cmd

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/workspacemcp/workspace-mcp/internal/server"
)

type stubTokenProvider struct{}

func (stubTokenProvider) GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "test-token"}, nil
}

func (stubTokenProvider) HasTokenForAccount(account string) bool { return true }

func TestServeCmdFlagDefaults(t *testing.T) {
	cmd := newServeCmd()

	transport, err := cmd.Flags().GetString("transport")
	require.NoError(t, err)
	assert.Equal(t, "stdio", transport)

	yolo, err := cmd.Flags().GetBool("yolo")
	require.NoError(t, err)
	assert.False(t, yolo)

	httpAddr, err := cmd.Flags().GetString("http-addr")
	require.NoError(t, err)
	assert.Equal(t, ":8080", httpAddr)

	metricsAddr, err := cmd.Flags().GetString("metrics-addr")
	require.NoError(t, err)
	assert.Equal(t, ":9090", metricsAddr)
}

func TestRegisterAllTools(t *testing.T) {
	sc, err := server.NewServerContext(context.Background(), stubTokenProvider{})
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	tests := []struct {
		name     string
		readOnly bool
	}{
		{name: "read-only", readOnly: true},
		{name: "write-enabled", readOnly: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mcpSrv := mcpserver.NewMCPServer("workspace-mcp-test", "test",
				mcpserver.WithToolCapabilities(true),
				mcpserver.WithResourceCapabilities(false, false),
			)

			err := registerAllTools(mcpSrv, sc, tt.readOnly)
			assert.NoError(t, err)
		})
	}
}

func TestRunServeUnsupportedTransport(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "false")

	credDir := t.TempDir()
	err := runServe("carrier-pigeon", false, ":0", false, credDir+"/credentials.json", credDir+"/tokens", MetricsConfig{})
	require.Error(t, err)
	// Fails before transport selection: no credentials on disk.
	assert.Contains(t, err.Error(), "workspace-mcp auth")
}
