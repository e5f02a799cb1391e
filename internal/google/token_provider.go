package google

import (
	"context"
	"fmt"

	"github.com/giantswarm/mcp-oauth/storage"
	"golang.org/x/oauth2"

	"github.com/workspacemcp/workspace-mcp/internal/instrumentation"
)

// TokenProvider supplies OAuth tokens for Google API clients. The
// abstraction lets the server swap the on-disk store for a caching
// store without touching the service clients.
type TokenProvider interface {
	// GetTokenForAccount retrieves an OAuth token for the given account.
	GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error)

	// HasTokenForAccount reports whether a token exists for the account.
	HasTokenForAccount(account string) bool
}

// FileTokenProvider reads tokens from the on-disk token directory.
type FileTokenProvider struct{}

// NewFileTokenProvider returns a provider backed by the token directory.
func NewFileTokenProvider() *FileTokenProvider {
	return &FileTokenProvider{}
}

// GetTokenForAccount loads and refreshes the stored token for account.
func (p *FileTokenProvider) GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error) {
	ts, err := GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	token, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to get token for account %q: %w", account, err)
	}

	return token, nil
}

// HasTokenForAccount reports whether a token file exists for account.
func (p *FileTokenProvider) HasTokenForAccount(account string) bool {
	return HasTokenForAccount(account)
}

// CachingTokenProvider layers a token store over another provider so
// repeated tool calls within one server run don't touch disk.
type CachingTokenProvider struct {
	base    TokenProvider
	store   storage.TokenStore
	metrics *instrumentation.Metrics
}

// NewCachingTokenProvider wraps base with store.
func NewCachingTokenProvider(base TokenProvider, store storage.TokenStore) *CachingTokenProvider {
	return &CachingTokenProvider{base: base, store: store}
}

// NewCachingTokenProviderWithMetrics additionally records token refresh
// attempts on cache misses.
func NewCachingTokenProviderWithMetrics(base TokenProvider, store storage.TokenStore, metrics *instrumentation.Metrics) *CachingTokenProvider {
	return &CachingTokenProvider{base: base, store: store, metrics: metrics}
}

// GetTokenForAccount returns a cached token if it is still valid,
// otherwise fetches from the base provider and caches the result.
func (p *CachingTokenProvider) GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error) {
	if token, err := p.store.GetToken(ctx, account); err == nil && token.Valid() {
		return token, nil
	}

	// Cache miss or expired cached token; the base provider refreshes
	// through its token source.
	token, err := p.base.GetTokenForAccount(ctx, account)
	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultFailure)
		}
		return nil, err
	}
	if p.metrics != nil {
		p.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultSuccess)
	}

	if err := p.store.SaveToken(ctx, account, token); err != nil {
		return nil, fmt.Errorf("failed to cache token for account %q: %w", account, err)
	}

	return token, nil
}

// HasTokenForAccount defers to the base provider.
func (p *CachingTokenProvider) HasTokenForAccount(account string) bool {
	return p.base.HasTokenForAccount(account)
}
