package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, raw string) string {
	t.Helper()
	data, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	return string(data)
}

func TestBuildRawMessage(t *testing.T) {
	raw := buildRawMessage(rawMessageInput{
		to:      []string{"alice@example.com", "bob@example.com"},
		cc:      []string{"carol@example.com"},
		subject: "Quarterly report",
		body:    "Please find the numbers below.",
	})

	msg := decodeRaw(t, raw)

	assert.Contains(t, msg, "To: alice@example.com, bob@example.com\r\n")
	assert.Contains(t, msg, "Cc: carol@example.com\r\n")
	assert.NotContains(t, msg, "Bcc:")
	assert.Contains(t, msg, "Subject: Quarterly report\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	assert.Contains(t, msg, "MIME-Version: 1.0\r\n")

	// Headers and body are separated by a blank line.
	headerEnd := strings.Index(msg, "\r\n\r\n")
	require.Greater(t, headerEnd, 0)
	assert.Equal(t, "Please find the numbers below.", msg[headerEnd+4:])
}

func TestBuildRawMessageHTML(t *testing.T) {
	raw := buildRawMessage(rawMessageInput{
		to:      []string{"alice@example.com"},
		subject: "Hello",
		body:    "<p>Hi</p>",
		isHTML:  true,
	})

	msg := decodeRaw(t, raw)
	assert.Contains(t, msg, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
}

func TestBuildRawMessageThreadingHeaders(t *testing.T) {
	raw := buildRawMessage(rawMessageInput{
		to:         []string{"alice@example.com"},
		subject:    "Re: Hello",
		body:       "Reply body",
		inReplyTo:  "<orig-123@mail.example.com>",
		references: "<root@mail.example.com> <orig-123@mail.example.com>",
	})

	msg := decodeRaw(t, raw)
	assert.Contains(t, msg, "In-Reply-To: <orig-123@mail.example.com>\r\n")
	assert.Contains(t, msg, "References: <root@mail.example.com> <orig-123@mail.example.com>\r\n")
}

func TestEncodeRFC2047(t *testing.T) {
	assert.Equal(t, "Plain ASCII subject", encodeRFC2047("Plain ASCII subject"))

	encoded := encodeRFC2047("Grüße aus München")
	assert.True(t, strings.HasPrefix(encoded, "=?UTF-8?"))
	assert.NotContains(t, encoded, "ü")
}
