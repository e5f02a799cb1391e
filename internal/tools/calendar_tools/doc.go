// Package calendar_tools registers the Google Calendar MCP tools:
// event listing and retrieval, plus create/update/delete when write
// access is enabled.
package calendar_tools
