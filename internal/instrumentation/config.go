package instrumentation

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds OpenTelemetry instrumentation settings.
type Config struct {
	// ServiceName is the OTel service name (default: workspace-mcp).
	ServiceName string

	// ServiceVersion is stamped on the resource; set from the build version.
	ServiceVersion string

	// ServiceInstanceID identifies this instance; defaults to the hostname
	// (the pod name on Kubernetes).
	ServiceInstanceID string

	// K8sNamespace and K8sPodName add Kubernetes resource attributes when set.
	K8sNamespace string
	K8sPodName   string

	// Enabled turns the whole subsystem on or off
	// (INSTRUMENTATION_ENABLED, default true).
	Enabled bool

	// MetricsExporter is one of "prometheus", "otlp", "stdout" (default prometheus).
	MetricsExporter string

	// TracingExporter is one of "otlp", "stdout", "none" (default none).
	TracingExporter string

	// OTLPEndpoint is the collector endpoint without protocol prefix,
	// e.g. "localhost:4318".
	OTLPEndpoint string

	// OTLPInsecure uses plain HTTP for OTLP export. Development only.
	OTLPInsecure bool

	// TraceSamplingRate is the trace sampling ratio, 0.0 to 1.0 (default 0.1).
	TraceSamplingRate float64

	// DetailedLabels enables high-cardinality metric labels such as the
	// account name. Keep disabled in production.
	DetailedLabels bool

	// AuditLogging configures the tool-invocation audit stream.
	AuditLogging AuditLoggingConfig
}

// AuditLoggingConfig controls the audit log stream.
type AuditLoggingConfig struct {
	// Enabled turns audit logging on (default true).
	Enabled bool

	// IncludePII includes full email addresses in audit records. When
	// false, only anonymized domain-level identity is logged.
	IncludePII bool
}

// DefaultConfig builds a Config from environment variables.
func DefaultConfig() Config {
	return Config{
		ServiceName:       envOr("OTEL_SERVICE_NAME", "workspace-mcp"),
		ServiceVersion:    "unknown",
		ServiceInstanceID: envOr("OTEL_SERVICE_INSTANCE_ID", ""),
		K8sNamespace:      envOr("K8S_NAMESPACE", envOr("POD_NAMESPACE", "")),
		K8sPodName:        envOr("K8S_POD_NAME", envOr("HOSTNAME", "")),
		Enabled:           envBoolOr("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:   envOr("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:   envOr("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:      envOr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:      envBoolOr("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate: envFloatOr("OTEL_TRACES_SAMPLER_ARG", 0.1),
		DetailedLabels:    envBoolOr("METRICS_DETAILED_LABELS", false),
		AuditLogging: AuditLoggingConfig{
			Enabled:    envBoolOr("AUDIT_LOGGING_ENABLED", true),
			IncludePII: envBoolOr("AUDIT_LOGGING_INCLUDE_PII", false),
		},
	}
}

// Validate reports configuration errors before the provider starts.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	switch c.MetricsExporter {
	case "", ExporterPrometheus, ExporterOTLP, ExporterStdout:
	default:
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	switch c.TracingExporter {
	case "", ExporterOTLP, ExporterStdout, ExporterNone:
	default:
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	if c.MetricsExporter == ExporterOTLP && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using the OTLP metrics exporter")
	}
	if c.TracingExporter == ExporterOTLP && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using the OTLP tracing exporter")
	}

	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

// Label values shared by metrics and audit logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"

	OAuthResultSuccess = "success"
	OAuthResultFailure = "failure"
	OAuthResultExpired = "expired"

	ServiceGmail    = "gmail"
	ServiceCalendar = "calendar"
	ServiceDrive    = "drive"
	ServiceSheets   = "sheets"

	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)
