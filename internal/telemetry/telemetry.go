// Package telemetry wires the OpenTelemetry tracer provider used to trace
// contact submissions.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/zjrosen/contactus/internal/config"
	"github.com/zjrosen/contactus/internal/log"
)

// ServiceName identifies spans emitted by this application.
const ServiceName = "contactus"

// Shutdown flushes and stops the tracer provider.
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs a global tracer provider for the configured exporter.
// With the "none" exporter the global no-op provider is left in place.
func Setup(ctx context.Context, cfg config.TracingConfig, version string) (Shutdown, error) {
	var (
		exporter sdktrace.SpanExporter
		closer   io.Closer
		err      error
	)

	switch cfg.Exporter {
	case config.ExporterNone, "":
		return noopShutdown, nil

	case config.ExporterStdout:
		f, ferr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: user-configured trace file
		if ferr != nil {
			return nil, fmt.Errorf("opening trace file: %w", ferr)
		}
		closer = f
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(f))

	case config.ExporterOTLP:
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exporter, err = otlptracegrpc.New(ctx, opts...)

	default:
		return nil, fmt.Errorf("%w: got %q", config.ErrUnknownExporter, cfg.Exporter)
	}
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("creating %s exporter: %w", cfg.Exporter, err)
	}

	tp := NewProvider(exporter, version, false)
	otel.SetTracerProvider(tp)
	log.Info(log.CatConfig, "Tracing enabled", "exporter", cfg.Exporter)

	return func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if closer != nil {
			_ = closer.Close()
		}
		return err
	}, nil
}

// NewProvider builds a tracer provider around exporter. Synchronous export is
// used by tests so spans are visible as soon as they end.
func NewProvider(exporter sdktrace.SpanExporter, version string, sync bool) *sdktrace.TracerProvider {
	res := resource.NewSchemaless(
		attribute.String("service.name", ServiceName),
		attribute.String("service.version", version),
	)
	processor := sdktrace.WithBatcher(exporter)
	if sync {
		processor = sdktrace.WithSyncer(exporter)
	}
	return sdktrace.NewTracerProvider(processor, sdktrace.WithResource(res))
}
