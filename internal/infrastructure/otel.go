package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"iplreport/internal/config"
	"iplreport/pkg/contracts"
)

const (
	ServiceName = "ipl-report"
	MeterName   = "iplreport"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string    // "stdout", "none"
	TraceWriter    io.Writer // destination of the stdout exporter, stderr when nil
	MetricsFile    string    // Prometheus textfile written by WriteMetrics, disabled when empty
}

// OTelProviders holds the OpenTelemetry providers for one run
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider // nil when tracing is disabled
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prometheus.Registry
	Metrics        *ReportMetrics
	Runtime        *RuntimeMetrics
	Logger         *slog.Logger

	metricsFile string
}

// ReportMetrics holds the instruments recorded by the report pipeline
type ReportMetrics struct {
	DeliveriesLoaded metric.Int64Counter
	PagesRendered    metric.Int64Counter
	Runs             metric.Int64Counter
	StageDuration    metric.Float64Histogram
}

// DefaultOTelConfig returns a configuration with tracing off and metrics kept in memory
func DefaultOTelConfig() *OTelConfig {
	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: contracts.Version,
		Environment:    "development",
		TraceExporter:  "none",
	}
}

// OTelConfigFrom maps the telemetry section of the application config
func OTelConfigFrom(cfg config.TelemetryConfig) *OTelConfig {
	otelCfg := DefaultOTelConfig()
	if cfg.Environment != "" {
		otelCfg.Environment = cfg.Environment
	}
	if cfg.TraceExporter != "" {
		otelCfg.TraceExporter = cfg.TraceExporter
	}
	otelCfg.MetricsFile = cfg.MetricsFile
	return otelCfg
}

// InitializeOTel sets up tracing and metrics for a report run.
// Providers are local to the run; no global OpenTelemetry state is touched.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	if logger == nil {
		logger = GetLogger()
	}

	ctx := context.Background()

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{
		Logger:      logger,
		metricsFile: cfg.MetricsFile,
	}

	if err := initializeTracing(ctx, cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := initializeMetrics(cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.DebugContext(ctx, "OpenTelemetry initialization complete",
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.String("metrics_file", cfg.MetricsFile))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg *OTelConfig) (*resource.Resource, error) {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
	), nil
}

// initializeTracing sets up the tracer, falling back to a no-op tracer when disabled
func initializeTracing(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	switch cfg.TraceExporter {
	case "", "none":
		providers.Tracer = noop.NewTracerProvider().Tracer(MeterName)
		return nil
	case "stdout":
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	w := cfg.TraceWriter
	if w == nil {
		w = os.Stderr
	}
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))

	providers.Logger.DebugContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter))
	return nil
}

// initializeMetrics bridges OTel instruments into a private Prometheus registry
func initializeMetrics(cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.Registry = registry
	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))

	metrics, err := CreateReportMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create report metrics: %w", err)
	}
	providers.Metrics = metrics

	rt, err := NewRuntimeMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create runtime metrics: %w", err)
	}
	providers.Runtime = rt
	return nil
}

// CreateReportMetrics creates the pipeline instruments
func CreateReportMetrics(meter metric.Meter) (*ReportMetrics, error) {
	deliveriesLoaded, err := meter.Int64Counter(
		"ipl_report_deliveries_loaded",
		metric.WithDescription("Number of delivery records loaded from the input log"),
	)
	if err != nil {
		return nil, err
	}

	pagesRendered, err := meter.Int64Counter(
		"ipl_report_pages_rendered",
		metric.WithDescription("Number of report pages rendered"),
	)
	if err != nil {
		return nil, err
	}

	runs, err := meter.Int64Counter(
		"ipl_report_runs",
		metric.WithDescription("Number of report runs by outcome"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"ipl_report_stage_duration",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ReportMetrics{
		DeliveriesLoaded: deliveriesLoaded,
		PagesRendered:    pagesRendered,
		Runs:             runs,
		StageDuration:    stageDuration,
	}, nil
}

// RecordStage records the duration of a named pipeline stage
func (m *ReportMetrics) RecordStage(ctx context.Context, stage string, started time.Time) {
	if m == nil {
		return
	}
	m.StageDuration.Record(ctx, time.Since(started).Seconds(),
		metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordRun counts a finished run with its outcome ("success" or "failure")
func (m *ReportMetrics) RecordRun(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.Runs.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// WriteMetrics writes the registry as a Prometheus textfile when a metrics file is configured
func (p *OTelProviders) WriteMetrics() error {
	if p == nil || p.metricsFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p.metricsFile), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(p.metricsFile, p.Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// Shutdown flushes and stops the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}

	var firstErr error
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			firstErr = fmt.Errorf("failed to shutdown tracer provider: %w", err)
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to shutdown meter provider: %w", err)
		}
	}
	return firstErr
}
