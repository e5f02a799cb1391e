package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacemcp/workspace-mcp/internal/instrumentation"
	"github.com/workspacemcp/workspace-mcp/internal/logging"
)

const (
	// DefaultHTTPAddr is the default bind address for the streamable
	// HTTP transport.
	DefaultHTTPAddr = ":8080"

	defaultHTTPReadHeaderTimeout = 10 * time.Second
	defaultHTTPIdleTimeout       = 120 * time.Second
)

// HTTPServerConfig configures the streamable HTTP transport.
type HTTPServerConfig struct {
	Addr      string
	MCPServer *mcpserver.MCPServer

	// HealthChecker is optional; when set its endpoints are registered
	// alongside /mcp.
	HealthChecker *HealthChecker

	// Logger is optional; slog.Default() is used when nil.
	Logger logging.Logger

	// Metrics is optional; when set every request is recorded.
	Metrics *instrumentation.Metrics
}

// HTTPServer serves the MCP protocol over streamable HTTP on /mcp,
// with health probes on the same port.
type HTTPServer struct {
	httpServer *http.Server
	addr       string
	logger     logging.Logger
}

// NewHTTPServer builds the HTTP transport server.
func NewHTTPServer(config HTTPServerConfig) (*HTTPServer, error) {
	if config.MCPServer == nil {
		return nil, fmt.Errorf("MCP server is required")
	}
	if config.Addr == "" {
		config.Addr = DefaultHTTPAddr
	}

	streamable := mcpserver.NewStreamableHTTPServer(config.MCPServer,
		mcpserver.WithEndpointPath("/mcp"),
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamable)
	if config.HealthChecker != nil {
		config.HealthChecker.RegisterHealthEndpoints(mux)
	}

	var handler http.Handler = mux
	if config.Metrics != nil {
		handler = httpMetricsMiddleware(config.Metrics, handler)
	}

	logger := config.Logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	return &HTTPServer{
		addr:   config.Addr,
		logger: logger,
		httpServer: &http.Server{
			Addr:              config.Addr,
			Handler:           handler,
			ReadHeaderTimeout: defaultHTTPReadHeaderTimeout,
			IdleTimeout:       defaultHTTPIdleTimeout,
		},
	}, nil
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func httpMetricsMiddleware(metrics *instrumentation.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// Start runs the server and blocks until it stops.
func (s *HTTPServer) Start() error {
	s.logger.Info("starting streamable HTTP server", "addr", s.addr, "endpoint", "/mcp")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down streamable HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured bind address.
func (s *HTTPServer) Addr() string {
	return s.addr
}
