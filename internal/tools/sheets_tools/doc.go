// Package sheets_tools registers the Google Sheets MCP tools for
// reading and writing cell ranges. The write tool is only registered
// when write access is enabled.
package sheets_tools
