package common

import "github.com/workspacemcp/workspace-mcp/internal/google"

// GetAccountFromArgs resolves the account a tool call targets: the
// explicit "account" argument when present, otherwise the default
// account.
func GetAccountFromArgs(args map[string]interface{}) string {
	if account, ok := args["account"].(string); ok && account != "" {
		return account
	}
	return google.DefaultAccount
}
