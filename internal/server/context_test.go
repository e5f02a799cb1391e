package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/workspacemcp/workspace-mcp/internal/instrumentation"
)

type fakeTokenProvider struct{}

func (fakeTokenProvider) GetTokenForAccount(context.Context, string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "fake"}, nil
}

func (fakeTokenProvider) HasTokenForAccount(string) bool { return true }

func TestNewServerContextRequiresProvider(t *testing.T) {
	_, err := NewServerContext(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token provider")
}

func TestServerContextShutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background(), fakeTokenProvider{})
	require.NoError(t, err)

	assert.False(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())

	// Shutdown is idempotent.
	require.NoError(t, sc.Shutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("server context should be cancelled after shutdown")
	}
}

func TestServerContextInstrumentationAccessors(t *testing.T) {
	sc, err := NewServerContext(context.Background(), fakeTokenProvider{})
	require.NoError(t, err)

	assert.Nil(t, sc.Metrics())
	assert.Nil(t, sc.AuditLogger())

	m := &instrumentation.Metrics{}
	sc.SetMetrics(m)
	assert.Same(t, m, sc.Metrics())

	al := instrumentation.NewAuditLogger(nil)
	sc.SetAuditLogger(al)
	assert.Same(t, al, sc.AuditLogger())
}
