package tracing

import (
	"context"
	"fmt"
	"github.com/Avi18971911/Haruspex/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"net/url"
)

// Init creates the tracer provider for the configured exporter. Every span is
// sampled. Callers own the returned provider and must call Shutdown on it to
// flush batched spans before exit; nothing is registered on the otel globals
// except the error handler, which reports export failures through the logger.
func Init(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		logger.Error("Error encountered when exporting spans", zap.Error(err))
	}))

	if cfg.TracesExporter == config.ExporterNone {
		return sdktrace.NewTracerProvider(
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
			sdktrace.WithResource(res),
		), nil
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return tp, nil
}

// Propagator returns the W3C trace context and baggage propagator used on
// both the server and client side of the application.
func Propagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
}

func newExporter(ctx context.Context, cfg *config.Config) (sdktrace.SpanExporter, error) {
	switch cfg.TracesExporter {
	case config.ExporterConsole:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case config.ExporterOTLP:
		if cfg.OTLPProtocol == config.ProtocolGRPC {
			endpoint, err := url.Parse(cfg.OTLPEndpoint)
			if err != nil {
				return nil, fmt.Errorf("failed to parse OTLP endpoint: %w", err)
			}
			conn, err := grpc.NewClient(
				endpoint.Host,
				grpc.WithTransportCredentials(insecure.NewCredentials()),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create gRPC client: %w", err)
			}
			return otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		}
		return otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
	default:
		return nil, fmt.Errorf("unsupported traces exporter %q", cfg.TracesExporter)
	}
}
