package gmail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacemcp/workspace-mcp/internal/gmail"
	"github.com/workspacemcp/workspace-mcp/internal/instrumentation"
	"github.com/workspacemcp/workspace-mcp/internal/server"
	"github.com/workspacemcp/workspace-mcp/internal/tools/common"
)

// RegisterGmailTools registers all Gmail tools with the MCP server.
// Send and reply are skipped in read-only mode.
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	searchTool := mcp.NewTool("gmail_search_messages",
		mcp.WithDescription("Search Gmail messages using Gmail query syntax (e.g., 'from:alice@example.com is:unread')"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Gmail search query"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description(fmt.Sprintf("Maximum number of results (1-%d, default %d)", gmail.MaxSearchResults, gmail.DefaultSearchResults)),
		),
	)
	s.AddTool(searchTool, common.InstrumentedToolHandlerWithService(
		"gmail_search_messages", instrumentation.ServiceGmail, instrumentation.OperationSearch, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchMessages(ctx, request, sc)
		}))

	readTool := mcp.NewTool("gmail_read_message",
		mcp.WithDescription("Read a Gmail message by ID, including its decoded body"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message to read"),
		),
		mcp.WithNumber("maxBodyChars",
			mcp.Description(fmt.Sprintf("Maximum body characters to return (default %d); longer bodies are truncated", gmail.DefaultMaxBodyChars)),
		),
	)
	s.AddTool(readTool, common.InstrumentedToolHandlerWithService(
		"gmail_read_message", instrumentation.ServiceGmail, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReadMessage(ctx, request, sc)
		}))

	if !readOnly {
		sendTool := mcp.NewTool("gmail_send_message",
			mcp.WithDescription("Send an email through Gmail"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("to",
				mcp.Required(),
				mcp.Description("Comma-separated recipient email addresses"),
			),
			mcp.WithString("cc",
				mcp.Description("Comma-separated CC email addresses"),
			),
			mcp.WithString("bcc",
				mcp.Description("Comma-separated BCC email addresses"),
			),
			mcp.WithString("subject",
				mcp.Required(),
				mcp.Description("Email subject"),
			),
			mcp.WithString("body",
				mcp.Required(),
				mcp.Description("Email body"),
			),
			mcp.WithBoolean("html",
				mcp.Description("Send the body as HTML instead of plain text"),
			),
		)
		s.AddTool(sendTool, common.InstrumentedToolHandlerWithService(
			"gmail_send_message", instrumentation.ServiceGmail, instrumentation.OperationSend, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleSendMessage(ctx, request, sc)
			}))

		replyTool := mcp.NewTool("gmail_reply_message",
			mcp.WithDescription("Reply to a Gmail message, preserving the thread"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("messageId",
				mcp.Required(),
				mcp.Description("The ID of the message to reply to"),
			),
			mcp.WithString("body",
				mcp.Required(),
				mcp.Description("Reply body"),
			),
			mcp.WithString("cc",
				mcp.Description("Comma-separated CC email addresses"),
			),
			mcp.WithString("bcc",
				mcp.Description("Comma-separated BCC email addresses"),
			),
			mcp.WithBoolean("html",
				mcp.Description("Send the body as HTML instead of plain text"),
			),
		)
		s.AddTool(replyTool, common.InstrumentedToolHandlerWithService(
			"gmail_reply_message", instrumentation.ServiceGmail, instrumentation.OperationSend, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleReplyMessage(ctx, request, sc)
			}))
	}

	return nil
}

func handleSearchMessages(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := getAccountFromArgs(args)

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	var maxResults int64
	if v, ok := args["maxResults"].(float64); ok {
		maxResults = int64(v)
	}

	client, err := getGmailClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	summaries, err := client.Search(ctx, query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search messages: %v", err)), nil
	}

	return mcp.NewToolResultText(formatMessageSummaries(summaries)), nil
}

func handleReadMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := getAccountFromArgs(args)

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	var maxBodyChars int
	if v, ok := args["maxBodyChars"].(float64); ok {
		maxBodyChars = int(v)
	}

	client, err := getGmailClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	content, err := client.ReadMessage(ctx, messageID, maxBodyChars)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read message: %v", err)), nil
	}

	return mcp.NewToolResultText(formatMessageContent(content)), nil
}

func handleSendMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := getAccountFromArgs(args)

	to, _ := args["to"].(string)
	subject, _ := args["subject"].(string)
	body, _ := args["body"].(string)

	msg := &gmail.OutgoingMessage{
		To:      splitAddressList(to),
		Subject: subject,
		Body:    body,
	}
	if cc, ok := args["cc"].(string); ok {
		msg.Cc = splitAddressList(cc)
	}
	if bcc, ok := args["bcc"].(string); ok {
		msg.Bcc = splitAddressList(bcc)
	}
	if html, ok := args["html"].(bool); ok {
		msg.IsHTML = html
	}

	if len(msg.To) == 0 {
		return mcp.NewToolResultError("to is required"), nil
	}
	if msg.Subject == "" {
		return mcp.NewToolResultError("subject is required"), nil
	}
	if msg.Body == "" {
		return mcp.NewToolResultError("body is required"), nil
	}

	client, err := getGmailClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sent, err := client.Send(ctx, msg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send message: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Message sent.\nID: %s\nThread ID: %s\n", sent.ID, sent.ThreadID)), nil
}

func handleReplyMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := getAccountFromArgs(args)

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}
	body, ok := args["body"].(string)
	if !ok || body == "" {
		return mcp.NewToolResultError("body is required"), nil
	}

	var cc, bcc []string
	if v, ok := args["cc"].(string); ok {
		cc = splitAddressList(v)
	}
	if v, ok := args["bcc"].(string); ok {
		bcc = splitAddressList(v)
	}
	isHTML := false
	if v, ok := args["html"].(bool); ok {
		isHTML = v
	}

	client, err := getGmailClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sent, err := client.Reply(ctx, messageID, body, cc, bcc, isHTML)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send reply: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reply sent.\nID: %s\nThread ID: %s\n", sent.ID, sent.ThreadID)), nil
}
