package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/contactus/internal/config"
)

func TestSetup_None(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TracingConfig{Exporter: config.ExporterNone}, "test")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_UnknownExporter(t *testing.T) {
	_, err := Setup(context.Background(), config.TracingConfig{Exporter: "zipkin"}, "test")
	require.ErrorIs(t, err, config.ErrUnknownExporter)
}

func TestSetup_StdoutWritesSpansToFile(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	path := filepath.Join(t.TempDir(), "traces.json")
	shutdown, err := Setup(context.Background(), config.TracingConfig{
		Exporter: config.ExporterStdout,
		File:     path,
	}, "test")
	require.NoError(t, err)

	_, span := otel.Tracer("telemetry-test").Start(context.Background(), "contact.submit")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "contact.submit")
}

func TestSetup_StdoutBadPath(t *testing.T) {
	_, err := Setup(context.Background(), config.TracingConfig{
		Exporter: config.ExporterStdout,
		File:     "/nonexistent/dir/traces.json",
	}, "test")
	require.Error(t, err)
}

func TestNewProvider_SyncExport(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := NewProvider(exp, "1.2.3", true)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("x").Start(context.Background(), "op")
	span.End()

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, "op", spans[0].Name)

	var service string
	for _, kv := range spans[0].Resource.Attributes() {
		if kv.Key == "service.name" {
			service = kv.Value.AsString()
		}
	}
	require.Equal(t, ServiceName, service)
}
