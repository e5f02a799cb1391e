package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// OutgoingMessage describes an email to send.
type OutgoingMessage struct {
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string
	IsHTML  bool
}

// Send builds an RFC 2822 message from msg and sends it.
func (c *Client) Send(ctx context.Context, msg *OutgoingMessage) (*SendResult, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}
	if msg.Subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if msg.Body == "" {
		return nil, fmt.Errorf("body is required")
	}

	raw := buildRawMessage(rawMessageInput{
		to:      msg.To,
		cc:      msg.Cc,
		bcc:     msg.Bcc,
		subject: msg.Subject,
		body:    msg.Body,
		isHTML:  msg.IsHTML,
	})

	sent, err := c.svc.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return &SendResult{ID: sent.Id, ThreadID: sent.ThreadId, LabelIDs: sent.LabelIds}, nil
}

// Reply sends body as a reply to an existing message, preserving Gmail
// threading via In-Reply-To and References headers and the thread ID.
func (c *Client) Reply(ctx context.Context, messageID, body string, cc, bcc []string, isHTML bool) (*SendResult, error) {
	if messageID == "" {
		return nil, fmt.Errorf("messageID is required")
	}
	if body == "" {
		return nil, fmt.Errorf("body is required")
	}

	original, err := c.svc.Messages.Get("me", messageID).
		Format("metadata").
		MetadataHeaders("From", "Subject", "Message-ID", "References").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get original message: %w", err)
	}

	from := HeaderValue(original, "From")
	if from == "" {
		return nil, fmt.Errorf("original message has no From header")
	}

	subject := HeaderValue(original, "Subject")
	if !strings.HasPrefix(strings.ToLower(subject), "re:") {
		subject = "Re: " + subject
	}

	originalMessageID := HeaderValue(original, "Message-ID")
	references := HeaderValue(original, "References")
	if references != "" && originalMessageID != "" {
		references = references + " " + originalMessageID
	} else if originalMessageID != "" {
		references = originalMessageID
	}

	raw := buildRawMessage(rawMessageInput{
		to:         []string{from},
		cc:         cc,
		bcc:        bcc,
		subject:    subject,
		body:       body,
		isHTML:     isHTML,
		inReplyTo:  originalMessageID,
		references: references,
	})

	sent, err := c.svc.Messages.Send("me", &gmail.Message{
		Raw:      raw,
		ThreadId: original.ThreadId,
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return &SendResult{ID: sent.Id, ThreadID: sent.ThreadId, LabelIDs: sent.LabelIds}, nil
}

type rawMessageInput struct {
	to         []string
	cc         []string
	bcc        []string
	subject    string
	body       string
	isHTML     bool
	inReplyTo  string
	references string
}

// buildRawMessage assembles an RFC 2822 message and encodes it as
// base64url the way the Gmail API expects.
func buildRawMessage(in rawMessageInput) string {
	var b strings.Builder

	b.WriteString("To: ")
	b.WriteString(strings.Join(in.to, ", "))
	b.WriteString("\r\n")

	if len(in.cc) > 0 {
		b.WriteString("Cc: ")
		b.WriteString(strings.Join(in.cc, ", "))
		b.WriteString("\r\n")
	}
	if len(in.bcc) > 0 {
		b.WriteString("Bcc: ")
		b.WriteString(strings.Join(in.bcc, ", "))
		b.WriteString("\r\n")
	}

	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(in.subject))
	b.WriteString("\r\n")

	if in.inReplyTo != "" {
		b.WriteString("In-Reply-To: ")
		b.WriteString(in.inReplyTo)
		b.WriteString("\r\n")
	}
	if in.references != "" {
		b.WriteString("References: ")
		b.WriteString(in.references)
		b.WriteString("\r\n")
	}

	if in.isHTML {
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	} else {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("\r\n")
	b.WriteString(in.body)

	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}

// encodeRFC2047 encodes a header value per RFC 2047 when it contains
// non-ASCII characters, e.g. umlauts in subjects.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}
