package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/workspacemcp/workspace-mcp/internal/calendar"
	"github.com/workspacemcp/workspace-mcp/internal/drive"
	"github.com/workspacemcp/workspace-mcp/internal/gmail"
	"github.com/workspacemcp/workspace-mcp/internal/google"
	"github.com/workspacemcp/workspace-mcp/internal/instrumentation"
	"github.com/workspacemcp/workspace-mcp/internal/sheets"
)

// ServerContext holds the shared state of the MCP server. Google API
// clients are created lazily, cached per account and reused for every
// tool call.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	tokenProvider google.TokenProvider

	gmailClients    map[string]*gmail.Client
	calendarClients map[string]*calendar.Client
	driveClients    map[string]*drive.Client
	sheetsClients   map[string]*sheets.Client

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates the server context with the given token
// provider.
func NewServerContext(ctx context.Context, tokenProvider google.TokenProvider) (*ServerContext, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		tokenProvider:   tokenProvider,
		gmailClients:    make(map[string]*gmail.Client),
		calendarClients: make(map[string]*calendar.Client),
		driveClients:    make(map[string]*drive.Client),
		sheetsClients:   make(map[string]*sheets.Client),
	}, nil
}

// Context returns the server lifetime context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// TokenProvider returns the configured token provider.
func (sc *ServerContext) TokenProvider() google.TokenProvider {
	return sc.tokenProvider
}

// SetMetrics attaches a metrics recorder. A nil recorder disables
// metric recording in the tool wrappers.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the attached metrics recorder, or nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger attaches an audit logger.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// AuditLogger returns the attached audit logger, or nil.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// GmailClientForAccount returns the cached Gmail client for account,
// creating it on first use.
func (sc *ServerContext) GmailClientForAccount(account string) (*gmail.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.gmailClients[account]; ok {
		return client, nil
	}

	client, err := gmail.NewClientForAccountWithProvider(sc.ctx, account, sc.tokenProvider)
	if err != nil {
		return nil, err
	}

	sc.gmailClients[account] = client
	return client, nil
}

// CalendarClientForAccount returns the cached Calendar client for
// account, creating it on first use.
func (sc *ServerContext) CalendarClientForAccount(account string) (*calendar.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.calendarClients[account]; ok {
		return client, nil
	}

	client, err := calendar.NewClientForAccountWithProvider(sc.ctx, account, sc.tokenProvider)
	if err != nil {
		return nil, err
	}

	sc.calendarClients[account] = client
	return client, nil
}

// DriveClientForAccount returns the cached Drive client for account,
// creating it on first use.
func (sc *ServerContext) DriveClientForAccount(account string) (*drive.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.driveClients[account]; ok {
		return client, nil
	}

	client, err := drive.NewClientForAccountWithProvider(sc.ctx, account, sc.tokenProvider)
	if err != nil {
		return nil, err
	}

	sc.driveClients[account] = client
	return client, nil
}

// SheetsClientForAccount returns the cached Sheets client for account,
// creating it on first use.
func (sc *ServerContext) SheetsClientForAccount(account string) (*sheets.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.sheetsClients[account]; ok {
		return client, nil
	}

	client, err := sheets.NewClientForAccountWithProvider(sc.ctx, account, sc.tokenProvider)
	if err != nil {
		return nil, err
	}

	sc.sheetsClients[account] = client
	return client, nil
}

// IsShutdown reports whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
