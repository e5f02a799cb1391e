// Package server holds the shared runtime state of the MCP server:
// per-account Google API clients, instrumentation handles and the
// auxiliary HTTP endpoints for health and metrics.
package server
