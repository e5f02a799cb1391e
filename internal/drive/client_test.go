package drive

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	drive "google.golang.org/api/drive/v3"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "bare term wrapped in fullText",
			query: "quarterly report",
			want:  "fullText contains 'quarterly report' and trashed=false",
		},
		{
			name:  "single quote escaped",
			query: "alice's notes",
			want:  `fullText contains 'alice\'s notes' and trashed=false`,
		},
		{
			name:  "operator query passes through",
			query: "mimeType='application/pdf' and name contains 'invoice'",
			want:  "mimeType='application/pdf' and name contains 'invoice'",
		},
		{
			name:  "contains query passes through",
			query: "name contains 'roadmap'",
			want:  "name contains 'roadmap'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildQuery(tt.query))
		})
	}
}

func TestExportMimeType(t *testing.T) {
	assert.Equal(t, "text/csv", exportMimeType("application/vnd.google-apps.spreadsheet"))
	assert.Equal(t, "text/plain", exportMimeType("application/vnd.google-apps.document"))
	assert.Equal(t, "text/plain", exportMimeType("application/vnd.google-apps.presentation"))
}

func TestToFileInfo(t *testing.T) {
	assert.Empty(t, toFileInfo(nil).ID)

	info := toFileInfo(&drive.File{
		Id:           "file-1",
		Name:         "notes.txt",
		MimeType:     "text/plain",
		Size:         42,
		ModifiedTime: "2026-08-01T12:00:00Z",
		Owners: []*drive.User{
			{EmailAddress: "alice@example.com"},
			{},
		},
	})

	assert.Equal(t, "file-1", info.ID)
	assert.Equal(t, int64(42), info.Size)
	assert.Equal(t, []string{"alice@example.com"}, info.Owners)
}

func TestRuneSafeCutKeepsRunesWhole(t *testing.T) {
	// A limit landing inside the two-byte "ä" must back off to the
	// preceding boundary rather than emit a half rune.
	text := strings.Repeat("ä", 10)
	assert.Equal(t, 4, runeSafeCut(text, 5))
	assert.Equal(t, 6, runeSafeCut(text, 6))

	for max := 1; max < len(text); max++ {
		assert.True(t, utf8.ValidString(text[:runeSafeCut(text, max)]),
			"cut at %d produced invalid UTF-8", max)
	}
}
