package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// DefaultAccount is the account name used when a tool call does not
// specify one.
const DefaultAccount = "default"

var (
	pathMu          sync.RWMutex
	credentialsFile string
	tokenDir        string
)

// SetPaths overrides the credentials file and token directory, typically
// from command-line flags. Empty values keep the defaults.
func SetPaths(credentials, tokens string) {
	pathMu.Lock()
	defer pathMu.Unlock()
	if credentials != "" {
		credentialsFile = credentials
	}
	if tokens != "" {
		tokenDir = tokens
	}
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "workspace-mcp")
}

// CredentialsFile returns the path of the OAuth client credentials JSON.
func CredentialsFile() string {
	pathMu.RLock()
	defer pathMu.RUnlock()
	if credentialsFile != "" {
		return credentialsFile
	}
	return filepath.Join(configDir(), "credentials.json")
}

// TokenDir returns the directory holding per-account token files.
func TokenDir() string {
	pathMu.RLock()
	defer pathMu.RUnlock()
	if tokenDir != "" {
		return tokenDir
	}
	return filepath.Join(configDir(), "tokens")
}

func tokenFile(account string) string {
	if account == "" {
		account = DefaultAccount
	}
	return filepath.Join(TokenDir(), account+".json")
}

// HasCredentials reports whether the OAuth client credentials file is
// readable.
func HasCredentials() bool {
	_, err := os.Stat(CredentialsFile())
	return err == nil
}

// HasTokenForAccount reports whether a stored token exists for account.
func HasTokenForAccount(account string) bool {
	_, err := os.Stat(tokenFile(account))
	return err == nil
}

// LoadOAuthConfig reads the client credentials JSON and builds the
// OAuth2 config with the default scope set.
func LoadOAuthConfig() (*oauth2.Config, error) {
	data, err := os.ReadFile(CredentialsFile())
	if err != nil {
		return nil, fmt.Errorf("failed to read OAuth client credentials from %s: %w", CredentialsFile(), err)
	}

	conf, err := google.ConfigFromJSON(data, DefaultOAuthScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OAuth client credentials: %w", err)
	}

	return conf, nil
}

// LoadTokenForAccount reads the stored token for account.
func LoadTokenForAccount(account string) (*oauth2.Token, error) {
	data, err := os.ReadFile(tokenFile(account))
	if err != nil {
		return nil, fmt.Errorf("no stored token for account %q: %w", account, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file for account %q: %w", account, err)
	}

	return &token, nil
}

// SaveTokenForAccount persists token for account with owner-only
// permissions.
func SaveTokenForAccount(account string, token *oauth2.Token) error {
	if err := os.MkdirAll(TokenDir(), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := os.WriteFile(tokenFile(account), data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// GetTokenSourceForAccount returns a refreshing token source for the
// stored token of account. Refreshed tokens are written back to disk so
// the refresh token survives rotation.
func GetTokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	conf, err := LoadOAuthConfig()
	if err != nil {
		return nil, err
	}

	token, err := LoadTokenForAccount(account)
	if err != nil {
		return nil, err
	}

	return &persistingTokenSource{
		account: account,
		base:    conf.TokenSource(ctx, token),
		last:    token,
	}, nil
}

// persistingTokenSource saves tokens back to disk whenever the
// underlying source refreshes them.
type persistingTokenSource struct {
	account string

	mu   sync.Mutex
	base oauth2.TokenSource
	last *oauth2.Token
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	if s.last == nil || token.AccessToken != s.last.AccessToken {
		if token.RefreshToken == "" && s.last != nil {
			token.RefreshToken = s.last.RefreshToken
		}
		if err := SaveTokenForAccount(s.account, token); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
		}
		s.last = token
	}

	return token, nil
}

// GetHTTPClientForAccount returns an authenticated HTTP client for
// account. The client uses HTTP/1.1 to avoid HTTP/2 stream errors seen
// with some Google API endpoints.
func GetHTTPClientForAccount(ctx context.Context, account string) (*http.Client, error) {
	ts, err := GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	return NewHTTPClient(ctx, ts), nil
}

// HTTPClientForToken builds an authenticated HTTP client around an
// already loaded token. The client refreshes through the configured
// OAuth endpoint when the token expires.
func HTTPClientForToken(ctx context.Context, token *oauth2.Token) (*http.Client, error) {
	conf, err := LoadOAuthConfig()
	if err != nil {
		return nil, err
	}

	return NewHTTPClient(ctx, conf.TokenSource(ctx, token)), nil
}

// NewHTTPClient builds an OAuth2 HTTP client over ts with HTTP/2
// disabled.
func NewHTTPClient(ctx context.Context, ts oauth2.TokenSource) *http.Client {
	client := oauth2.NewClient(ctx, ts)

	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	return client
}
