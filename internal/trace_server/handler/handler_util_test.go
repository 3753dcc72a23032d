package handler

import (
	"context"
	"github.com/Avi18971911/Haruspex/internal/trace_server/model"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"testing"
	"time"
)

// stubSimulationService returns canned results with no simulated delay so
// handler tests can exercise HTTP and span behavior quickly.
type stubSimulationService struct {
	records      []model.Record
	inputSize    int
	summary      *model.ProcessSummary
	fetchErr     error
	validateErr  error
	transformErr error
	operationErr error
}

func (s *stubSimulationService) FetchRecords(_ context.Context) ([]model.Record, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.records, nil
}

func (s *stubSimulationService) ValidateInput(
	_ context.Context,
	_ map[string]interface{},
) (int, error) {
	if s.validateErr != nil {
		return 0, s.validateErr
	}
	return s.inputSize, nil
}

func (s *stubSimulationService) TransformInput(
	_ context.Context,
	_ map[string]interface{},
) (*model.ProcessSummary, error) {
	if s.transformErr != nil {
		return nil, s.transformErr
	}
	return s.summary, nil
}

func (s *stubSimulationService) RunOperation(
	_ context.Context,
	step int,
) (*model.OperationResult, error) {
	if s.operationErr != nil {
		return nil, s.operationErr
	}
	return &model.OperationResult{Step: step, Value: 10 * step, Elapsed: 5 * time.Millisecond}, nil
}

func (s *stubSimulationService) Fail(_ context.Context) error {
	return model.ErrIntentional
}

// newTestTracer builds a tracer backed by an in-memory exporter with a
// synchronous processor so spans are visible as soon as they end.
func newTestTracer(t *testing.T) (trace.Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp.Tracer("handler-test"), exporter
}

func findSpan(spans tracetest.SpanStubs, name string) (tracetest.SpanStub, bool) {
	for _, span := range spans {
		if span.Name == name {
			return span, true
		}
	}
	return tracetest.SpanStub{}, false
}

func spanAttributes(span tracetest.SpanStub) map[attribute.Key]attribute.Value {
	attributes := make(map[attribute.Key]attribute.Value, len(span.Attributes))
	for _, kv := range span.Attributes {
		attributes[kv.Key] = kv.Value
	}
	return attributes
}
