// Package google provides OAuth2 authentication and token management for
// Google APIs.
//
// Client credentials are read from a Google Cloud OAuth client JSON file
// and user tokens are persisted as JSON, one file per account. The
// TokenProvider interface allows different token sources to be plugged
// in, such as the file store used by the STDIO transport or an in-memory
// caching store for long-running HTTP servers.
package google
