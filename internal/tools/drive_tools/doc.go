// Package drive_tools registers the Google Drive MCP tools: file
// search, metadata retrieval and content reading with export of
// Google-native documents.
package drive_tools
