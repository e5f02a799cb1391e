package google

// DefaultOAuthScopes are the Google OAuth scopes requested during
// authorization. They cover everything the tool surface needs:
//   - Gmail: full access (search, read, send)
//   - Google Calendar: full access
//   - Google Drive: full access (search, read, export)
//   - Google Sheets: read and write
//   - OpenID Connect: user identity for the profile resource
var DefaultOAuthScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",

	"https://mail.google.com/",

	"https://www.googleapis.com/auth/calendar",

	"https://www.googleapis.com/auth/drive",

	"https://www.googleapis.com/auth/spreadsheets",
}
