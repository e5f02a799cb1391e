package instrumentation

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolInvocationComplete(t *testing.T) {
	ti := NewToolInvocation("gmail_search_messages").
		WithAccount("work").
		WithService(ServiceGmail, OperationSearch)

	ti.CompleteSuccess()

	assert.True(t, ti.Success)
	assert.Empty(t, ti.Error)
	assert.Equal(t, StatusSuccess, ti.Status())
	assert.GreaterOrEqual(t, ti.Duration.Nanoseconds(), int64(0))
}

func TestToolInvocationCompleteWithError(t *testing.T) {
	ti := NewToolInvocation("calendar_create_event")
	ti.CompleteWithError(errors.New("googleapi: Error 403: forbidden"))

	assert.False(t, ti.Success)
	assert.Equal(t, "googleapi: Error 403: forbidden", ti.Error)
	assert.Equal(t, StatusError, ti.Status())
}

func TestLogAttrsExcludesEmail(t *testing.T) {
	ti := NewToolInvocation("drive_search_files").
		WithUser("alice@example.com").
		WithAccount("work")
	ti.CompleteSuccess()

	attrs := ti.LogAttrs()

	var sawDomain, sawEmail bool
	for _, a := range attrs {
		if a.Key == "user_domain" {
			sawDomain = true
			assert.Equal(t, "example.com", a.Value.String())
		}
		if a.Key == "user" {
			sawEmail = true
		}
	}
	assert.True(t, sawDomain)
	assert.False(t, sawEmail, "full email must not appear in non-PII attrs")
}

func TestLogAuditAttrsIncludesEmail(t *testing.T) {
	ti := NewToolInvocation("gmail_send_message").
		WithUser("alice@example.com")
	ti.CompleteSuccess()

	var sawEmail bool
	for _, a := range ti.LogAuditAttrs() {
		if a.Key == "user" {
			sawEmail = true
			assert.Equal(t, "alice@example.com", a.Value.String())
		}
	}
	assert.True(t, sawEmail)
}

func TestAuditLoggerLogToolInvocation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	al := NewAuditLoggerWithConfig(logger, AuditLoggingConfig{Enabled: true, IncludePII: false})

	ti := NewToolInvocation("sheets_read_range").WithUser("bob@example.org")
	ti.CompleteSuccess()
	al.LogToolInvocation(ti)

	out := buf.String()
	require.Contains(t, out, "tool_executed")
	assert.Contains(t, out, "example.org")
	assert.NotContains(t, out, "bob@example.org")

	buf.Reset()
	ti = NewToolInvocation("sheets_write_range")
	ti.CompleteWithError(errors.New("range not found"))
	al.LogToolInvocation(ti)

	assert.Contains(t, buf.String(), "tool_failed")
	assert.Contains(t, buf.String(), "range not found")
}

func TestAuditLoggerDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	al := NewAuditLoggerWithConfig(logger, AuditLoggingConfig{Enabled: false})
	al.LogToolInvocation(NewToolInvocation("gmail_read_message").CompleteSuccess())

	assert.Empty(t, buf.String())
}
