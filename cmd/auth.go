package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workspacemcp/workspace-mcp/internal/google"
)

func newAuthCmd() *cobra.Command {
	var (
		account         string
		credentialsFile string
		tokenDir        string
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize a Google account",
		Long: `Run the Google OAuth authorization flow for an account.

A browser window opens with the Google consent page; after approval the
token is stored on disk and reused by the serve command. Requires an
OAuth client credentials file (download it from the Google Cloud Console
for a "Desktop app" OAuth client).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			google.SetPaths(credentialsFile, tokenDir)

			if !google.HasCredentials() {
				return fmt.Errorf("OAuth client credentials not found at %s: download the credentials JSON for a Desktop app OAuth client from the Google Cloud Console and place it there, or pass --credentials", google.CredentialsFile())
			}

			if err := google.Authorize(cmd.Context(), account); err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}

			fmt.Printf("Account %q authorized. Token stored under %s\n", account, google.TokenDir())
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", google.DefaultAccount, "Account name the token is stored under")
	cmd.Flags().StringVar(&credentialsFile, "credentials", "", "Path to the OAuth client credentials JSON (default: the user config dir)")
	cmd.Flags().StringVar(&tokenDir, "token-dir", "", "Directory for stored OAuth tokens (default: the user config dir)")

	cmd.AddCommand(newAuthStatusCmd(&credentialsFile, &tokenDir))

	return cmd
}

func newAuthStatusCmd(credentialsFile, tokenDir *string) *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show authorization status",
		RunE: func(cmd *cobra.Command, args []string) error {
			google.SetPaths(*credentialsFile, *tokenDir)

			fmt.Printf("Credentials file: %s", google.CredentialsFile())
			if google.HasCredentials() {
				fmt.Println(" (present)")
			} else {
				fmt.Println(" (missing)")
			}

			fmt.Printf("Token for account %q: ", account)
			if google.HasTokenForAccount(account) {
				fmt.Println("present")
			} else {
				fmt.Println("missing (run 'workspace-mcp auth')")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", google.DefaultAccount, "Account name to check")

	return cmd
}
