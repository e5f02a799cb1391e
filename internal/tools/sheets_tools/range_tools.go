package sheets_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacemcp/workspace-mcp/internal/instrumentation"
	"github.com/workspacemcp/workspace-mcp/internal/server"
	"github.com/workspacemcp/workspace-mcp/internal/sheets"
	"github.com/workspacemcp/workspace-mcp/internal/tools/common"
)

// RegisterSheetsTools registers all Sheets tools with the MCP server.
// The write tool is skipped in read-only mode.
func RegisterSheetsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	readTool := mcp.NewTool("sheets_read_range",
		mcp.WithDescription("Read a range of cells from a Google Sheets spreadsheet"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("Range in A1 notation (e.g. 'Sheet1!A1:C10')"),
		),
	)
	s.AddTool(readTool, common.InstrumentedToolHandlerWithService(
		"sheets_read_range", instrumentation.ServiceSheets, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReadRange(ctx, request, sc)
		}))

	if !readOnly {
		writeTool := mcp.NewTool("sheets_write_range",
			mcp.WithDescription("Write values to a range of cells in a Google Sheets spreadsheet"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("spreadsheetId",
				mcp.Required(),
				mcp.Description("The ID of the spreadsheet"),
			),
			mcp.WithString("range",
				mcp.Required(),
				mcp.Description("Range in A1 notation (e.g. 'Sheet1!A1:C10')"),
			),
			mcp.WithString("values",
				mcp.Required(),
				mcp.Description(`Cell values as a JSON 2D array, rows of cells (e.g. '[["Name","Count"],["widgets",42]]')`),
			),
			mcp.WithString("valueInputOption",
				mcp.Description("How values are interpreted: 'USER_ENTERED' (default, parsed as if typed) or 'RAW' (stored literally)"),
			),
		)
		s.AddTool(writeTool, common.InstrumentedToolHandlerWithService(
			"sheets_write_range", instrumentation.ServiceSheets, instrumentation.OperationUpdate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleWriteRange(ctx, request, sc)
			}))
	}

	return nil
}

func getSheetsClient(ctx context.Context, account string, sc *server.ServerContext) (*sheets.Client, error) {
	client, err := sc.SheetsClientForAccount(account)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets client for account %s: %w. Run 'workspace-mcp auth' to authorize", account, err)
	}
	return client, nil
}

func handleReadRange(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	spreadsheetID, ok := args["spreadsheetId"].(string)
	if !ok || spreadsheetID == "" {
		return mcp.NewToolResultError("spreadsheetId is required"), nil
	}
	readRange, ok := args["range"].(string)
	if !ok || readRange == "" {
		return mcp.NewToolResultError("range is required"), nil
	}

	client, err := getSheetsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := client.ReadRange(ctx, spreadsheetID, readRange)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read range: %v", err)), nil
	}

	return mcp.NewToolResultText(formatRangeData(data)), nil
}

func handleWriteRange(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	spreadsheetID, ok := args["spreadsheetId"].(string)
	if !ok || spreadsheetID == "" {
		return mcp.NewToolResultError("spreadsheetId is required"), nil
	}
	writeRange, ok := args["range"].(string)
	if !ok || writeRange == "" {
		return mcp.NewToolResultError("range is required"), nil
	}
	valuesJSON, ok := args["values"].(string)
	if !ok || valuesJSON == "" {
		return mcp.NewToolResultError("values is required"), nil
	}

	values, err := parseValues(valuesJSON)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	valueInputOption, _ := args["valueInputOption"].(string)

	client, err := getSheetsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := client.WriteRange(ctx, spreadsheetID, writeRange, values, valueInputOption)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to write range: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Successfully updated range %s\nRows: %d\nColumns: %d\nCells: %d\n",
		result.UpdatedRange, result.UpdatedRows, result.UpdatedColumns, result.UpdatedCells)), nil
}

// parseValues decodes the JSON 2D array of cell values.
func parseValues(valuesJSON string) ([][]interface{}, error) {
	var values [][]interface{}
	if err := json.Unmarshal([]byte(valuesJSON), &values); err != nil {
		return nil, fmt.Errorf("invalid values: expected a JSON 2D array of cells: %v", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("invalid values: at least one row is required")
	}
	return values, nil
}

// formatRangeData renders cells as tab-separated rows.
func formatRangeData(data *sheets.RangeData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Range: %s\n", data.Range)
	fmt.Fprintf(&b, "Rows: %d\n\n", len(data.Values))

	for _, row := range data.Values {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprintf("%v", cell)
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteString("\n")
	}

	return b.String()
}
