// Package instrumentation wires OpenTelemetry metrics and tracing for
// the MCP server.
//
// A Provider owns the meter and tracer providers and their exporters
// (Prometheus by default, OTLP or stdout when configured). Metrics
// exposes typed recorders for the metric instruments used across the
// server: HTTP requests, Google API operations, OAuth events, and MCP
// tool invocations. AuditLogger emits a structured audit record per
// tool invocation, with PII controls for the user identity.
//
// Everything is configured through environment variables with sensible
// defaults; see DefaultConfig. When INSTRUMENTATION_ENABLED=false the
// provider degrades to no-ops so call sites need no conditionals.
package instrumentation
