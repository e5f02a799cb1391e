package gmail_tools

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/workspacemcp/workspace-mcp/internal/gmail"
)

func TestSplitAddressList(t *testing.T) {
	assert.Nil(t, splitAddressList(""))
	assert.Equal(t, []string{"a@example.com"}, splitAddressList("a@example.com"))
	assert.Equal(t,
		[]string{"a@example.com", "b@example.com"},
		splitAddressList(" a@example.com , b@example.com "))
	assert.Equal(t, []string{"a@example.com"}, splitAddressList("a@example.com,,"))
}

func TestFormatMessageSummaries(t *testing.T) {
	out := formatMessageSummaries([]gmail.MessageSummary{
		{
			ID:      "msg-1",
			From:    "alice@example.com",
			To:      "bob@example.com",
			Subject: "Lunch?",
			Date:    "Mon, 24 Aug 2026 11:00:00 +0200",
			Snippet: "Are you free at noon",
		},
		{
			ID:      "msg-2",
			From:    "carol@example.com",
			Subject: "Invoice #42",
			Date:    "Tue, 25 Aug 2026 09:00:00 +0200",
		},
	})

	assert.Contains(t, out, "Found 2 messages:")
	assert.Contains(t, out, "1. Lunch?")
	assert.Contains(t, out, "   ID: msg-1")
	assert.Contains(t, out, "   Snippet: Are you free at noon")
	assert.Contains(t, out, "2. Invoice #42")
	// The second message has no To or Snippet, so those lines are absent.
	assert.Contains(t, out, "   From: carol@example.com\n   Date:")
}

func TestFormatMessageContent(t *testing.T) {
	out := formatMessageContent(&gmail.MessageContent{
		MessageSummary: gmail.MessageSummary{
			ID:       "msg-1",
			ThreadID: "thr-1",
			From:     "alice@example.com",
			To:       "bob@example.com",
			Subject:  "Status",
			Date:     "Mon, 24 Aug 2026 11:00:00 +0200",
		},
		Cc:       "carol@example.com",
		Body:     "All systems nominal.",
		BodyType: "text/plain",
		LabelIDs: []string{"INBOX", "IMPORTANT"},
	})

	assert.Contains(t, out, "Subject: Status\n")
	assert.Contains(t, out, "Cc: carol@example.com\n")
	assert.Contains(t, out, "Thread ID: thr-1\n")
	assert.Contains(t, out, "Labels: INBOX, IMPORTANT\n")
	assert.Contains(t, out, "\n\nAll systems nominal.")
}
