package drive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/workspacemcp/workspace-mcp/internal/google"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// DefaultMaxChars bounds file content returned to the caller.
	DefaultMaxChars = 10000

	// maxDownloadBytes refuses direct downloads beyond this size so a
	// stray binary doesn't get pulled into memory.
	maxDownloadBytes = 10 << 20

	googleNativePrefix = "application/vnd.google-apps"
)

// TruncationMarker is appended to content cut at the character limit.
const TruncationMarker = "\n... [truncated]"

// Client wraps the Google Drive service for a single account.
type Client struct {
	svc     *drive.Service
	account string
}

// Account returns the account name this client is bound to.
func (c *Client) Account() string {
	return c.account
}

// NewClientForAccountWithProvider creates a Drive client authenticated
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

	svc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{svc: svc, account: account}, nil
}

// NewClientForAccount creates a Drive client using the on-disk token
// store.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, account, google.NewFileTokenProvider())
}

// FileInfo is the listing view of a Drive file.
type FileInfo struct {
	ID           string
	Name         string
	MimeType     string
	Size         int64
	ModifiedTime string
	WebViewLink  string
	Owners       []string
}

// FileContent is a file's metadata plus its textual content.
type FileContent struct {
	FileInfo
	ContentType string // MIME type of Content, not necessarily of the file
	Content     string
	Truncated   bool
	Exported    bool
}

// SearchFiles searches Drive. A bare term is wrapped into a fullText
// query excluding trashed files; anything containing Drive query
// operators is passed through verbatim.
func (c *Client) SearchFiles(ctx context.Context, query, orderBy string, pageSize int64) ([]FileInfo, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	call := c.svc.Files.List().
		Q(buildQuery(query)).
		PageSize(pageSize).
		Fields("files(id, name, mimeType, size, modifiedTime, webViewLink, owners(emailAddress))").
		Context(ctx)

	if orderBy != "" {
		call = call.OrderBy(orderBy)
	}

	list, err := call.Do()
	if err != nil {
		return nil, err
	}

	files := make([]FileInfo, 0, len(list.Files))
	for _, f := range list.Files {
		files = append(files, toFileInfo(f))
	}

	return files, nil
}

// GetFile retrieves metadata for one file.
func (c *Client) GetFile(ctx context.Context, fileID string) (*FileInfo, error) {
	f, err := c.svc.Files.Get(fileID).
		Fields("id, name, mimeType, size, modifiedTime, webViewLink, owners(emailAddress)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	info := toFileInfo(f)
	return &info, nil
}

// ReadFile returns a file's content as text. Google-native files
// (Docs, Sheets, Slides) are exported; everything else is downloaded
// directly. Content longer than maxChars is cut and marked.
func (c *Client) ReadFile(ctx context.Context, fileID string, maxChars int) (*FileContent, error) {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	info, err := c.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	content := &FileContent{FileInfo: *info}

	var body io.ReadCloser
	if strings.HasPrefix(info.MimeType, googleNativePrefix) {
		content.Exported = true
		content.ContentType = exportMimeType(info.MimeType)

		resp, err := c.svc.Files.Export(fileID, content.ContentType).Context(ctx).Download()
		if err != nil {
			return nil, err
		}
		body = resp.Body
	} else {
		if info.Size > maxDownloadBytes {
			return nil, fmt.Errorf("file %s is %d bytes, too large to read (limit %d)", info.Name, info.Size, maxDownloadBytes)
		}
		content.ContentType = info.MimeType

		resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
		if err != nil {
			return nil, err
		}
		body = resp.Body
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxDownloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	text := string(data)
	if len(text) > maxChars {
		content.Content = text[:runeSafeCut(text, maxChars)] + TruncationMarker
		content.Truncated = true
	} else {
		content.Content = text
	}

	return content, nil
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

// buildQuery wraps a bare search term into a Drive query. Queries that
// already use Drive operators pass through untouched.
func buildQuery(query string) string {
	if strings.Contains(query, "=") || strings.Contains(query, " contains ") {
		return query
	}
	escaped := strings.ReplaceAll(query, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "'", `\'`)
	return fmt.Sprintf("fullText contains '%s' and trashed=false", escaped)
}

// exportMimeType picks the text export format for a Google-native type.
func exportMimeType(mimeType string) string {
	if mimeType == "application/vnd.google-apps.spreadsheet" {
		return "text/csv"
	}
	return "text/plain"
}

func toFileInfo(f *drive.File) FileInfo {
	if f == nil {
		return FileInfo{}
	}

	info := FileInfo{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Size:         f.Size,
		ModifiedTime: f.ModifiedTime,
		WebViewLink:  f.WebViewLink,
	}
	for _, owner := range f.Owners {
		if owner.EmailAddress != "" {
			info.Owners = append(info.Owners, owner.EmailAddress)
		}
	}
	return info
}
