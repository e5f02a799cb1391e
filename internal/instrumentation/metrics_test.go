package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T, detailedLabels bool) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp.Meter("test"), detailedLabels)
	require.NoError(t, err)
	return m, reader
}

func collectedMetricNames(t *testing.T, reader *sdkmetric.ManualReader) map[string]bool {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	names := make(map[string]bool)
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			names[metric.Name] = true
		}
	}
	return names
}

func TestMetricsRecorders(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()

	m.RecordHTTPRequest(ctx, "POST", "/mcp", 200, 25*time.Millisecond)
	m.RecordGoogleAPIOperation(ctx, ServiceGmail, OperationSearch, StatusSuccess, 120*time.Millisecond)
	m.RecordOAuthAuth(ctx, OAuthResultSuccess)
	m.RecordOAuthTokenRefresh(ctx, OAuthResultFailure)
	m.RecordToolInvocation(ctx, "gmail_search_messages", StatusSuccess, 130*time.Millisecond)
	m.RecordToolInvocationWithAccount(ctx, "gmail_read_message", StatusError, "work", 5*time.Millisecond)

	names := collectedMetricNames(t, reader)
	assert.True(t, names["http_requests_total"])
	assert.True(t, names["http_request_duration_seconds"])
	assert.True(t, names["google_api_operations_total"])
	assert.True(t, names["oauth_auth_total"])
	assert.True(t, names["oauth_token_refresh_total"])
	assert.True(t, names["mcp_tool_invocations_total"])
	assert.True(t, names["mcp_tool_duration_seconds"])
}

func TestZeroMetricsIsNoop(t *testing.T) {
	var m Metrics
	ctx := context.Background()

	// Must not panic with uninitialized instruments.
	m.RecordHTTPRequest(ctx, "GET", "/healthz", 200, time.Millisecond)
	m.RecordGoogleAPIOperation(ctx, ServiceSheets, OperationUpdate, StatusError, time.Millisecond)
	m.RecordOAuthAuth(ctx, OAuthResultFailure)
	m.RecordOAuthTokenRefresh(ctx, OAuthResultExpired)
	m.RecordToolInvocation(ctx, "sheets_read_range", StatusSuccess, time.Millisecond)
	m.RecordToolInvocationWithAccount(ctx, "sheets_write_range", StatusSuccess, "default", time.Millisecond)
}
