// Package logging provides shared slog attribute helpers and a small
// Logger interface used across the server.
//
// All packages log through log/slog with a consistent attribute
// vocabulary (operation, service, account, tool, status, error) so that
// log pipelines can filter and aggregate without per-package mappings.
// Helpers for anonymizing emails and masking tokens keep PII out of
// general log streams.
package logging
