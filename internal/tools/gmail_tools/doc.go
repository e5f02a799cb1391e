// Package gmail_tools registers the Gmail MCP tools: message search,
// reading, sending and replying. Sending tools are only registered when
// write access is enabled.
package gmail_tools
