package instrumentation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withTestTracerProvider(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	return recorder
}

func TestStartToolSpan(t *testing.T) {
	recorder := withTestTracerProvider(t)

	ctx, span := StartToolSpan(context.Background(), "gmail_search_messages",
		NewSpanAttributeBuilder().
			WithAccount("work").
			WithService(ServiceGmail, OperationSearch).
			WithReadOnly(true).
			Build()...)

	assert.NotEmpty(t, GetTraceID(ctx))
	assert.NotEmpty(t, GetSpanID(ctx))

	SetSpanSuccess(span)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "tool.gmail_search_messages", spans[0].Name())

	attrs := spans[0].Attributes()
	keys := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		keys[string(a.Key)] = true
	}
	assert.True(t, keys[SpanAttrTool])
	assert.True(t, keys[SpanAttrAccount])
	assert.True(t, keys[SpanAttrService])
	assert.True(t, keys[SpanAttrOperation])
	assert.True(t, keys[SpanAttrReadOnly])
}

func TestStartGoogleAPISpanError(t *testing.T) {
	recorder := withTestTracerProvider(t)

	_, span := StartGoogleAPISpan(context.Background(), ServiceDrive, OperationGet,
		NewSpanAttributeBuilder().WithResourceID("file-123").Build()...)

	SetSpanError(span, assert.AnError)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "google.drive.get", spans[0].Name())
	assert.Len(t, spans[0].Events(), 1) // recorded error
}

func TestGetTraceIDWithoutSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Empty(t, GetSpanID(context.Background()))
}
