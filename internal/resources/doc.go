// Package resources registers the MCP resources exposed by the server:
// the embedded browser-automation skill document and profile information
// about the authenticated Google account.
package resources
