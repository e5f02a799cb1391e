package drive_tools

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/workspacemcp/workspace-mcp/internal/drive"
)

func TestFormatFileList(t *testing.T) {
	out := formatFileList([]drive.FileInfo{
		{
			ID:           "file-1",
			Name:         "roadmap.md",
			MimeType:     "text/markdown",
			Size:         1234,
			ModifiedTime: "2026-08-01T12:00:00Z",
		},
		{
			ID:       "doc-1",
			Name:     "Design doc",
			MimeType: "application/vnd.google-apps.document",
		},
	})

	assert.Contains(t, out, "Found 2 files:")
	assert.Contains(t, out, "1. roadmap.md")
	assert.Contains(t, out, "   Size: 1234 bytes")
	assert.Contains(t, out, "2. Design doc")
	// Google-native files report no size.
	assert.Contains(t, out, "   Type: application/vnd.google-apps.document\n\n")
}

func TestFormatFileInfo(t *testing.T) {
	out := formatFileInfo(&drive.FileInfo{
		ID:          "file-1",
		Name:        "notes.txt",
		MimeType:    "text/plain",
		Size:        42,
		WebViewLink: "https://drive.google.com/file/d/file-1/view",
		Owners:      []string{"alice@example.com"},
	})

	assert.Contains(t, out, "File: notes.txt\n")
	assert.Contains(t, out, "Size: 42 bytes\n")
	assert.Contains(t, out, "Link: https://drive.google.com/file/d/file-1/view\n")
	assert.Contains(t, out, "Owners: alice@example.com\n")
}
