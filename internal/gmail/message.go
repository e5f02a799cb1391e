package gmail

import (
	"context"
	"encoding/base64"
	"strings"
	"unicode/utf8"

	gmail "google.golang.org/api/gmail/v1"
)

// DefaultMaxBodyChars is the body truncation limit applied when the
// caller does not specify one.
const DefaultMaxBodyChars = 4000

// TruncationMarker is appended to bodies cut at the character limit.
const TruncationMarker = "\n... [truncated]"

// ReadMessage fetches a single message in full and extracts its body,
// preferring text/plain over text/html. Bodies longer than maxBodyChars
// are cut and marked.
func (c *Client) ReadMessage(ctx context.Context, messageID string, maxBodyChars int) (*MessageContent, error) {
	if maxBodyChars <= 0 {
		maxBodyChars = DefaultMaxBodyChars
	}

	msg, err := c.svc.Messages.Get("me", messageID).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	body, bodyType := extractBody(msg.Payload)

	content := &MessageContent{
		MessageSummary: MessageSummary{
			ID:       msg.Id,
			ThreadID: msg.ThreadId,
			From:     HeaderValue(msg, "From"),
			To:       HeaderValue(msg, "To"),
			Subject:  HeaderValue(msg, "Subject"),
			Date:     HeaderValue(msg, "Date"),
			Snippet:  msg.Snippet,
		},
		Cc:       HeaderValue(msg, "Cc"),
		BodyType: bodyType,
		LabelIDs: msg.LabelIds,
	}

	if len(body) > maxBodyChars {
		content.Body = body[:runeSafeCut(body, maxBodyChars)] + TruncationMarker
		content.Truncated = true
	} else {
		content.Body = body
	}

	return content, nil
}

// extractBody walks the MIME tree for the first text/plain part,
// falling back to text/html, and decodes it.
func extractBody(payload *gmail.MessagePart) (body, mimeType string) {
	if payload == nil {
		return "", ""
	}

	if part := findPart(payload, "text/plain"); part != nil {
		return decodePartBody(part), "text/plain"
	}
	if part := findPart(payload, "text/html"); part != nil {
		return decodePartBody(part), "text/html"
	}
	return "", ""
}

func findPart(part *gmail.MessagePart, mimeType string) *gmail.MessagePart {
	if part == nil {
		return nil
	}
	if strings.HasPrefix(part.MimeType, mimeType) && part.Body != nil && part.Body.Data != "" {
		return part
	}
	for _, p := range part.Parts {
		if found := findPart(p, mimeType); found != nil {
			return found
		}
	}
	return nil
}

// runeSafeCut returns a cut position at or below max that does not
// split a multi-byte UTF-8 rune. Requires max < len(s).
func runeSafeCut(s string, max int) int {
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return cut
}

// decodePartBody decodes a base64url body. The API emits unpadded
// base64url for message parts, and some senders produce standard
// base64, so both are tolerated.
func decodePartBody(part *gmail.MessagePart) string {
	data, err := base64.URLEncoding.DecodeString(part.Body.Data)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(part.Body.Data)
	}
	if err != nil {
		data, err = base64.StdEncoding.DecodeString(part.Body.Data)
	}
	if err != nil {
		return ""
	}
	return string(data)
}
