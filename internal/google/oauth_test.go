package google

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/giantswarm/mcp-oauth/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const testCredentialsJSON = `{
  "installed": {
    "client_id": "test-client-id.apps.googleusercontent.com",
    "client_secret": "test-secret",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "redirect_uris": ["http://localhost"]
  }
}`

func setTestPaths(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	pathMu.Lock()
	prevCreds, prevTokens := credentialsFile, tokenDir
	pathMu.Unlock()

	SetPaths(filepath.Join(dir, "credentials.json"), filepath.Join(dir, "tokens"))

	t.Cleanup(func() {
		pathMu.Lock()
		credentialsFile, tokenDir = prevCreds, prevTokens
		pathMu.Unlock()
	})

	return dir
}

func TestHasCredentials(t *testing.T) {
	dir := setTestPaths(t)

	assert.False(t, HasCredentials())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials.json"), []byte(testCredentialsJSON), 0600))
	assert.True(t, HasCredentials())
}

func TestLoadOAuthConfig(t *testing.T) {
	dir := setTestPaths(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials.json"), []byte(testCredentialsJSON), 0600))

	conf, err := LoadOAuthConfig()
	require.NoError(t, err)

	assert.Equal(t, "test-client-id.apps.googleusercontent.com", conf.ClientID)
	assert.Equal(t, DefaultOAuthScopes, conf.Scopes)
}

func TestLoadOAuthConfigMissingFile(t *testing.T) {
	setTestPaths(t)

	_, err := LoadOAuthConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}

func TestTokenRoundTrip(t *testing.T) {
	setTestPaths(t)

	assert.False(t, HasTokenForAccount("work"))

	token := &oauth2.Token{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-xyz",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Round(time.Second),
	}
	require.NoError(t, SaveTokenForAccount("work", token))

	assert.True(t, HasTokenForAccount("work"))

	loaded, err := LoadTokenForAccount("work")
	require.NoError(t, err)
	assert.Equal(t, token.AccessToken, loaded.AccessToken)
	assert.Equal(t, token.RefreshToken, loaded.RefreshToken)

	// Token files must not be world readable.
	info, err := os.Stat(filepath.Join(TokenDir(), "work.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadTokenForAccountMissing(t *testing.T) {
	setTestPaths(t)

	_, err := LoadTokenForAccount("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `account "nope"`)
}

func TestTokenFileDefaultAccount(t *testing.T) {
	setTestPaths(t)

	assert.Equal(t, filepath.Join(TokenDir(), "default.json"), tokenFile(""))
	assert.Equal(t, filepath.Join(TokenDir(), "work.json"), tokenFile("work"))
}

type staticTokenProvider struct {
	token *oauth2.Token
	calls int
}

func (p *staticTokenProvider) GetTokenForAccount(_ context.Context, _ string) (*oauth2.Token, error) {
	p.calls++
	return p.token, nil
}

func (p *staticTokenProvider) HasTokenForAccount(string) bool { return true }

func TestCachingTokenProvider(t *testing.T) {
	base := &staticTokenProvider{
		token: &oauth2.Token{
			AccessToken: "cached-token",
			TokenType:   "Bearer",
			Expiry:      time.Now().Add(time.Hour),
		},
	}

	provider := NewCachingTokenProvider(base, memory.New())
	ctx := context.Background()

	tok, err := provider.GetTokenForAccount(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "cached-token", tok.AccessToken)
	assert.Equal(t, 1, base.calls)

	// Second call is served from the store.
	_, err = provider.GetTokenForAccount(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, 1, base.calls)

	assert.True(t, provider.HasTokenForAccount("default"))
}
