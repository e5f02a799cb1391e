package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsServerRequiresProvider(t *testing.T) {
	_, err := NewMetricsServer(MetricsServerConfig{Addr: ":9090"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instrumentation provider is required")
}

func TestNewMetricsServerDefaultAddr(t *testing.T) {
	// Validation of the provider happens before the server would bind,
	// so a nil provider is the only reachable error path here.
	s := &MetricsServer{addr: DefaultMetricsAddr}
	assert.Equal(t, ":9090", s.Addr())
}

func TestNewHTTPServerRequiresMCPServer(t *testing.T) {
	_, err := NewHTTPServer(HTTPServerConfig{Addr: ":8080"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MCP server is required")
}
