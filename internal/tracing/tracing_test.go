package tracing

import (
	"context"
	"errors"
	"github.com/Avi18971911/Haruspex/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"testing"
	"time"
)

func newTestConfig(exporter string, protocol string) *config.Config {
	return &config.Config{
		Host:              "localhost",
		Port:              8000,
		ServiceName:       "flask-app",
		ServiceVersion:    "1.0.0",
		OTLPEndpoint:      "http://localhost:4318",
		OTLPProtocol:      protocol,
		TracesExporter:    exporter,
		AutoTraceEnabled:  false,
		AutoTraceInterval: 30 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

func TestInit(t *testing.T) {
	t.Run("should sample every span even when exporting is disabled", func(t *testing.T) {
		tracerProvider, err := Init(
			context.Background(),
			newTestConfig(config.ExporterNone, config.ProtocolHTTP),
			zap.NewNop(),
		)
		require.NoError(t, err)
		t.Cleanup(func() {
			assert.NoError(t, tracerProvider.Shutdown(context.Background()))
		})

		_, span := tracerProvider.Tracer("trace-server").Start(context.Background(), "sample-check")
		defer span.End()
		assert.True(t, span.SpanContext().IsSampled())
	})

	t.Run("should tag spans with the configured service name and version", func(t *testing.T) {
		tracerProvider, err := Init(
			context.Background(),
			newTestConfig(config.ExporterNone, config.ProtocolHTTP),
			zap.NewNop(),
		)
		require.NoError(t, err)
		t.Cleanup(func() {
			assert.NoError(t, tracerProvider.Shutdown(context.Background()))
		})
		exporter := tracetest.NewInMemoryExporter()
		tracerProvider.RegisterSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter))

		_, span := tracerProvider.Tracer("trace-server").Start(context.Background(), "resource-check")
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		serviceName, serviceVersion := "", ""
		for _, attr := range spans[0].Resource.Attributes() {
			switch attr.Key {
			case semconv.ServiceNameKey:
				serviceName = attr.Value.AsString()
			case semconv.ServiceVersionKey:
				serviceVersion = attr.Value.AsString()
			}
		}
		assert.Equal(t, "flask-app", serviceName)
		assert.Equal(t, "1.0.0", serviceVersion)
	})

	t.Run("should report export failures through the logger", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		tracerProvider, err := Init(
			context.Background(),
			newTestConfig(config.ExporterNone, config.ProtocolHTTP),
			zap.New(core),
		)
		require.NoError(t, err)
		t.Cleanup(func() {
			assert.NoError(t, tracerProvider.Shutdown(context.Background()))
		})

		otel.Handle(errors.New("collector unreachable"))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "Error encountered when exporting spans", logs.All()[0].Message)
	})
}

func TestNewExporter(t *testing.T) {
	t.Run("should create a console exporter", func(t *testing.T) {
		exporter, err := newExporter(context.Background(), newTestConfig(config.ExporterConsole, config.ProtocolHTTP))
		require.NoError(t, err)
		assert.IsType(t, &stdouttrace.Exporter{}, exporter)
	})

	t.Run("should create an OTLP exporter for the HTTP protocol", func(t *testing.T) {
		exporter, err := newExporter(context.Background(), newTestConfig(config.ExporterOTLP, config.ProtocolHTTP))
		require.NoError(t, err)
		require.NotNil(t, exporter)
		assert.NoError(t, exporter.Shutdown(context.Background()))
	})

	t.Run("should create an OTLP exporter for the gRPC protocol", func(t *testing.T) {
		exporter, err := newExporter(context.Background(), newTestConfig(config.ExporterOTLP, config.ProtocolGRPC))
		require.NoError(t, err)
		require.NotNil(t, exporter)
		assert.NoError(t, exporter.Shutdown(context.Background()))
	})

	t.Run("should fail on an unparseable gRPC endpoint", func(t *testing.T) {
		cfg := newTestConfig(config.ExporterOTLP, config.ProtocolGRPC)
		cfg.OTLPEndpoint = "://missing-scheme"
		_, err := newExporter(context.Background(), cfg)
		assert.Error(t, err)
	})

	t.Run("should fail on an unknown exporter", func(t *testing.T) {
		_, err := newExporter(context.Background(), newTestConfig("jaeger", config.ProtocolHTTP))
		assert.Error(t, err)
	})
}

func TestPropagator(t *testing.T) {
	t.Run("should propagate W3C trace context and baggage", func(t *testing.T) {
		fields := Propagator().Fields()
		assert.Contains(t, fields, "traceparent")
		assert.Contains(t, fields, "baggage")
	})
}
