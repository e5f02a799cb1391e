// Package common provides shared helpers for MCP tool implementations:
// account resolution from tool arguments and the instrumentation
// wrappers applied to every registered handler.
package common
