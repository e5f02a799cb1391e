package gmail

import (
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// MessageSummary is the listing view of a message: envelope headers
// plus the snippet, without the body.
type MessageSummary struct {
	ID       string
	ThreadID string
	From     string
	To       string
	Subject  string
	Date     string
	Snippet  string
}

// MessageContent is the full view of a single message including the
// decoded body.
type MessageContent struct {
	MessageSummary
	Cc        string
	Body      string
	BodyType  string // text/plain or text/html
	Truncated bool
	LabelIDs  []string
}

// SendResult reports the identifiers of a sent message.
type SendResult struct {
	ID       string
	ThreadID string
	LabelIDs []string
}

// Profile is the authenticated user's mailbox profile.
type Profile struct {
	EmailAddress  string
	MessagesTotal int64
	ThreadsTotal  int64
}

// HeaderValue returns the value of a named header from a message
// payload, or "" when absent. Header name comparison is case
// insensitive per RFC 5322.
func HeaderValue(m *gmail.Message, name string) string {
	if m == nil || m.Payload == nil {
		return ""
	}
	for _, h := range m.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}
