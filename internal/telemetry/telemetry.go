// Package telemetry provides OpenTelemetry integration for civic.
//
// Telemetry is off unless CIVIC_OTEL_ENABLED=true; the disabled path installs
// no-op providers and WrapStorage returns the store untouched.
//
//	CIVIC_OTEL_ENABLED=true               enable telemetry
//	CIVIC_OTEL_STDOUT=true                also print metrics to stderr
//	OTEL_EXPORTER_OTLP_METRICS_ENDPOINT   OTLP/HTTP metrics endpoint
//	OTEL_EXPORTER_OTLP_ENDPOINT           fallback for the above
//	OTEL_SERVICE_NAME                     override the service name
//
// Spans are always printed to stderr when enabled.
package telemetry

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Periodic readers also flush on Shutdown, so a short CLI run still exports.
const (
	stdoutMetricInterval = 15 * time.Second
	otlpMetricInterval   = 30 * time.Second
)

var (
	shutdownFns []func(context.Context) error

	// Exporter output goes to stderr so it never mixes with --json output.
	stdoutWriter io.Writer = os.Stderr
)

// Config is the telemetry setup for one process.
type Config struct {
	Enabled         bool
	Stdout          bool
	MetricsEndpoint string
	ServiceName     string
	ServiceVersion  string
}

// ConfigFromEnv reads the CIVIC_OTEL_* and standard OTEL_* variables.
func ConfigFromEnv(serviceName, version string) Config {
	return Config{
		Enabled: Enabled(),
		Stdout:  os.Getenv("CIVIC_OTEL_STDOUT") == "true",
		MetricsEndpoint: cmp.Or(
			os.Getenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"),
			os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		),
		ServiceName:    cmp.Or(os.Getenv("OTEL_SERVICE_NAME"), serviceName),
		ServiceVersion: version,
	}
}

// Enabled reports whether telemetry is active (CIVIC_OTEL_ENABLED=true).
func Enabled() bool {
	return os.Getenv("CIVIC_OTEL_ENABLED") == "true"
}

// Init installs global providers configured from the environment.
func Init(ctx context.Context, serviceName, version string) error {
	return Setup(ctx, ConfigFromEnv(serviceName, version))
}

// Setup installs global providers for cfg. A disabled cfg installs no-ops.
func Setup(ctx context.Context, cfg Config) error {
	if !cfg.Enabled {
		otel.SetTracerProvider(tracenoop.NewTracerProvider())
		otel.SetMeterProvider(metricnoop.NewMeterProvider())
		return nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return fmt.Errorf("telemetry: resource: %w", err)
	}

	spanExp, err := stdouttrace.New(stdouttrace.WithWriter(stdoutWriter))
	if err != nil {
		return fmt.Errorf("telemetry: span exporter: %w", err)
	}
	// Syncer: the process usually exits before a batcher would fire.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSyncer(spanExp),
	)

	readers, err := metricReaders(ctx, cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return fmt.Errorf("telemetry: metric exporter: %w", err)
	}
	mpOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, r := range readers {
		mpOpts = append(mpOpts, sdkmetric.WithReader(r))
	}
	mp := sdkmetric.NewMeterProvider(mpOpts...)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	shutdownFns = append(shutdownFns, tp.Shutdown, mp.Shutdown)
	return nil
}

// metricReaders returns one periodic reader per configured metrics sink.
// No sink means metrics are recorded and dropped.
func metricReaders(ctx context.Context, cfg Config) ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader
	if cfg.Stdout {
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(stdoutWriter))
		if err != nil {
			return nil, err
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(stdoutMetricInterval)))
	}
	if cfg.MetricsEndpoint != "" {
		exp, err := buildOTLPMetricExporter(ctx, cfg.MetricsEndpoint)
		if err != nil {
			return nil, err
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(otlpMetricInterval)))
	}
	return readers, nil
}

// Tracer returns a tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// Meter returns a meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Shutdown flushes pending spans and metrics and releases the providers.
// Call it once per process with a short-lived context.
func Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range shutdownFns {
		errs = append(errs, fn(ctx))
	}
	shutdownFns = nil
	return errors.Join(errs...)
}
