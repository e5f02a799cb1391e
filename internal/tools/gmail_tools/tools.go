package gmail_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/workspacemcp/workspace-mcp/internal/gmail"
	"github.com/workspacemcp/workspace-mcp/internal/server"
	"github.com/workspacemcp/workspace-mcp/internal/tools/common"
)

func getGmailClient(ctx context.Context, account string, sc *server.ServerContext) (*gmail.Client, error) {
	client, err := sc.GmailClientForAccount(account)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail client for account %s: %w. Run 'workspace-mcp auth' to authorize", account, err)
	}
	return client, nil
}

func getAccountFromArgs(args map[string]interface{}) string {
	return common.GetAccountFromArgs(args)
}

// splitAddressList splits a comma-separated address list, trimming
// whitespace and dropping empty entries.
func splitAddressList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	addrs := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			addrs = append(addrs, trimmed)
		}
	}
	return addrs
}

// formatMessageSummaries renders search results as a numbered listing.
func formatMessageSummaries(summaries []gmail.MessageSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d messages:\n\n", len(summaries))
	for i, m := range summaries {
		fmt.Fprintf(&b, "%d. %s\n", i+1, m.Subject)
		fmt.Fprintf(&b, "   ID: %s\n", m.ID)
		fmt.Fprintf(&b, "   From: %s\n", m.From)
		if m.To != "" {
			fmt.Fprintf(&b, "   To: %s\n", m.To)
		}
		fmt.Fprintf(&b, "   Date: %s\n", m.Date)
		if m.Snippet != "" {
			fmt.Fprintf(&b, "   Snippet: %s\n", m.Snippet)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatMessageContent renders a full message, headers first.
func formatMessageContent(m *gmail.MessageContent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", m.Subject)
	fmt.Fprintf(&b, "From: %s\n", m.From)
	if m.To != "" {
		fmt.Fprintf(&b, "To: %s\n", m.To)
	}
	if m.Cc != "" {
		fmt.Fprintf(&b, "Cc: %s\n", m.Cc)
	}
	fmt.Fprintf(&b, "Date: %s\n", m.Date)
	fmt.Fprintf(&b, "ID: %s\n", m.ID)
	fmt.Fprintf(&b, "Thread ID: %s\n", m.ThreadID)
	if len(m.LabelIDs) > 0 {
		fmt.Fprintf(&b, "Labels: %s\n", strings.Join(m.LabelIDs, ", "))
	}
	if m.BodyType != "" {
		fmt.Fprintf(&b, "Body type: %s\n", m.BodyType)
	}
	b.WriteString("\n")
	b.WriteString(m.Body)
	return b.String()
}
