package gmail

import (
	"encoding/base64"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	gmail "google.golang.org/api/gmail/v1"
)

func b64url(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestHeaderValue(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			Headers: []*gmail.MessagePartHeader{
				{Name: "From", Value: "alice@example.com"},
				{Name: "subject", Value: "Lowercase header name"},
			},
		},
	}

	assert.Equal(t, "alice@example.com", HeaderValue(msg, "From"))
	assert.Equal(t, "Lowercase header name", HeaderValue(msg, "Subject"))
	assert.Equal(t, "", HeaderValue(msg, "Cc"))
	assert.Equal(t, "", HeaderValue(nil, "From"))
	assert.Equal(t, "", HeaderValue(&gmail.Message{}, "From"))
}

func TestExtractBodyPrefersPlainText(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmail.MessagePart{
			{
				MimeType: "text/html",
				Body:     &gmail.MessagePartBody{Data: b64url("<p>html body</p>")},
			},
			{
				MimeType: "text/plain",
				Body:     &gmail.MessagePartBody{Data: b64url("plain body")},
			},
		},
	}

	body, mimeType := extractBody(payload)
	assert.Equal(t, "plain body", body)
	assert.Equal(t, "text/plain", mimeType)
}

func TestExtractBodyFallsBackToHTML(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmail.MessagePart{
			{
				MimeType: "text/html",
				Body:     &gmail.MessagePartBody{Data: b64url("<p>only html</p>")},
			},
		},
	}

	body, mimeType := extractBody(payload)
	assert.Equal(t, "<p>only html</p>", body)
	assert.Equal(t, "text/html", mimeType)
}

func TestExtractBodyNestedParts(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmail.MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*gmail.MessagePart{
					{
						MimeType: "text/plain",
						Body:     &gmail.MessagePartBody{Data: b64url("nested plain")},
					},
				},
			},
			{
				MimeType: "application/pdf",
				Body:     &gmail.MessagePartBody{AttachmentId: "att-1"},
			},
		},
	}

	body, mimeType := extractBody(payload)
	assert.Equal(t, "nested plain", body)
	assert.Equal(t, "text/plain", mimeType)
}

func TestExtractBodyEmpty(t *testing.T) {
	body, mimeType := extractBody(nil)
	assert.Empty(t, body)
	assert.Empty(t, mimeType)

	body, mimeType = extractBody(&gmail.MessagePart{MimeType: "multipart/mixed"})
	assert.Empty(t, body)
	assert.Empty(t, mimeType)
}

func TestDecodePartBodyUnpadded(t *testing.T) {
	// The API emits base64url without padding; the decoder must accept
	// inputs whose length is not a multiple of four.
	unpadded := base64.RawURLEncoding.EncodeToString([]byte("hello body"))
	part := &gmail.MessagePart{Body: &gmail.MessagePartBody{Data: unpadded}}

	assert.Equal(t, "hello body", decodePartBody(part))
}

func TestDecodePartBodyStandardBase64Fallback(t *testing.T) {
	// Standard base64 with "+" is invalid base64url; the decoder falls
	// back and still recovers the content.
	stdEncoded := base64.StdEncoding.EncodeToString([]byte{0xfb, 0xef, 0xbe})
	part := &gmail.MessagePart{Body: &gmail.MessagePartBody{Data: stdEncoded}}

	assert.Equal(t, string([]byte{0xfb, 0xef, 0xbe}), decodePartBody(part))
}

func TestRuneSafeCut(t *testing.T) {
	// "München" has a two-byte "ü" at byte offsets 1-2; cutting at 2
	// would split it.
	assert.Equal(t, 1, runeSafeCut("München", 2))
	assert.Equal(t, 3, runeSafeCut("München", 3))
	assert.Equal(t, 4, runeSafeCut("ascii only", 4))
	assert.Equal(t, 0, runeSafeCut("é", 1))

	s := "héllo wörld, héllo wörld"
	for max := 1; max < len(s); max++ {
		assert.True(t, utf8.ValidString(s[:runeSafeCut(s, max)]),
			"cut at %d produced invalid UTF-8", max)
	}
}
