package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/workspacemcp/workspace-mcp/internal/google"
)

// Value input options accepted by WriteRange.
const (
	InputRaw         = "RAW"
	InputUserEntered = "USER_ENTERED"
)

// Client wraps the Google Sheets service for a single account.
type Client struct {
	svc     *sheets.Service
	account string
}

// Account returns the account name this client is bound to.
func (c *Client) Account() string {
	return c.account
}

// NewClientForAccountWithProvider creates a Sheets client authenticated
// through the given token provider.
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	client, err := google.HTTPClientForToken(ctx, token)
	if err != nil {
		return nil, err
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &Client{svc: svc, account: account}, nil
}

// NewClientForAccount creates a Sheets client using the on-disk token
// store.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, account, google.NewFileTokenProvider())
}

// RangeData holds the values of one read range.
type RangeData struct {
	Range  string
	Values [][]interface{}
}

// WriteResult reports what a range write changed.
type WriteResult struct {
	UpdatedRange   string
	UpdatedRows    int64
	UpdatedColumns int64
	UpdatedCells   int64
}

// ReadRange reads a range in A1 notation from a spreadsheet.
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, readRange string) (*RangeData, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return &RangeData{
		Range:  resp.Range,
		Values: resp.Values,
	}, nil
}

// WriteRange writes values to a range in A1 notation.
// valueInputOption chooses between literal values (RAW) and values
// parsed as if typed by the user (USER_ENTERED).
func (c *Client) WriteRange(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}, valueInputOption string) (*WriteResult, error) {
	switch valueInputOption {
	case "":
		valueInputOption = InputUserEntered
	case InputRaw, InputUserEntered:
	default:
		return nil, fmt.Errorf("invalid valueInputOption %q: must be %s or %s", valueInputOption, InputRaw, InputUserEntered)
	}

	body := &sheets.ValueRange{
		Range:  writeRange,
		Values: values,
	}

	resp, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, writeRange, body).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	return &WriteResult{
		UpdatedRange:   resp.UpdatedRange,
		UpdatedRows:    resp.UpdatedRows,
		UpdatedColumns: resp.UpdatedColumns,
		UpdatedCells:   resp.UpdatedCells,
	}, nil
}
