package drive_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacemcp/workspace-mcp/internal/drive"
	"github.com/workspacemcp/workspace-mcp/internal/instrumentation"
	"github.com/workspacemcp/workspace-mcp/internal/server"
	"github.com/workspacemcp/workspace-mcp/internal/tools/common"
)

// RegisterDriveTools registers all Drive tools with the MCP server.
// All Drive tools are read-only.
func RegisterDriveTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	searchTool := mcp.NewTool("drive_search_files",
		mcp.WithDescription("Search Google Drive files. A plain term searches file content; Drive query syntax (e.g. \"name contains 'report'\") is passed through."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term or Drive query expression"),
		),
		mcp.WithString("orderBy",
			mcp.Description("Sort order (e.g. 'modifiedTime desc', 'name')"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description(fmt.Sprintf("Maximum number of files (1-%d, default %d)", drive.MaxPageSize, drive.DefaultPageSize)),
		),
	)
	s.AddTool(searchTool, common.InstrumentedToolHandlerWithService(
		"drive_search_files", instrumentation.ServiceDrive, instrumentation.OperationSearch, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchFiles(ctx, request, sc)
		}))

	getTool := mcp.NewTool("drive_get_file",
		mcp.WithDescription("Get metadata for a Drive file by ID"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file"),
		),
	)
	s.AddTool(getTool, common.InstrumentedToolHandlerWithService(
		"drive_get_file", instrumentation.ServiceDrive, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetFile(ctx, request, sc)
		}))

	readTool := mcp.NewTool("drive_read_file",
		mcp.WithDescription("Read a Drive file's content as text. Google Docs export as plain text, Sheets as CSV."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to read"),
		),
		mcp.WithNumber("maxChars",
			mcp.Description(fmt.Sprintf("Maximum characters to return (default %d); longer content is truncated", drive.DefaultMaxChars)),
		),
	)
	s.AddTool(readTool, common.InstrumentedToolHandlerWithService(
		"drive_read_file", instrumentation.ServiceDrive, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReadFile(ctx, request, sc)
		}))

	return nil
}

func getDriveClient(ctx context.Context, account string, sc *server.ServerContext) (*drive.Client, error) {
	client, err := sc.DriveClientForAccount(account)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive client for account %s: %w. Run 'workspace-mcp auth' to authorize", account, err)
	}
	return client, nil
}

func handleSearchFiles(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	orderBy, _ := args["orderBy"].(string)

	var pageSize int64
	if v, ok := args["pageSize"].(float64); ok {
		pageSize = int64(v)
	}

	client, err := getDriveClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	files, err := client.SearchFiles(ctx, query, orderBy, pageSize)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search files: %v", err)), nil
	}

	return mcp.NewToolResultText(formatFileList(files)), nil
}

func handleGetFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}

	client, err := getDriveClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := client.GetFile(ctx, fileID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get file: %v", err)), nil
	}

	return mcp.NewToolResultText(formatFileInfo(info)), nil
}

func handleReadFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}

	var maxChars int
	if v, ok := args["maxChars"].(float64); ok {
		maxChars = int(v)
	}

	client, err := getDriveClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	content, err := client.ReadFile(ctx, fileID, maxChars)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read file: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", content.Name)
	fmt.Fprintf(&b, "ID: %s\n", content.ID)
	fmt.Fprintf(&b, "MIME type: %s\n", content.MimeType)
	if content.Exported {
		fmt.Fprintf(&b, "Exported as: %s\n", content.ContentType)
	}
	b.WriteString("\n")
	b.WriteString(content.Content)

	return mcp.NewToolResultText(b.String()), nil
}

// formatFileList renders search results as a numbered listing.
func formatFileList(files []drive.FileInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d files:\n\n", len(files))
	for i, f := range files {
		fmt.Fprintf(&b, "%d. %s\n", i+1, f.Name)
		fmt.Fprintf(&b, "   ID: %s\n", f.ID)
		fmt.Fprintf(&b, "   Type: %s\n", f.MimeType)
		if f.Size > 0 {
			fmt.Fprintf(&b, "   Size: %d bytes\n", f.Size)
		}
		if f.ModifiedTime != "" {
			fmt.Fprintf(&b, "   Modified: %s\n", f.ModifiedTime)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatFileInfo renders one file's metadata.
func formatFileInfo(f *drive.FileInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", f.Name)
	fmt.Fprintf(&b, "ID: %s\n", f.ID)
	fmt.Fprintf(&b, "MIME type: %s\n", f.MimeType)
	if f.Size > 0 {
		fmt.Fprintf(&b, "Size: %d bytes\n", f.Size)
	}
	if f.ModifiedTime != "" {
		fmt.Fprintf(&b, "Modified: %s\n", f.ModifiedTime)
	}
	if f.WebViewLink != "" {
		fmt.Fprintf(&b, "Link: %s\n", f.WebViewLink)
	}
	if len(f.Owners) > 0 {
		fmt.Fprintf(&b, "Owners: %s\n", strings.Join(f.Owners, ", "))
	}
	return b.String()
}
