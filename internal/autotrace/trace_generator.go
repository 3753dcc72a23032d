package autotrace

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"io"
	"math/rand"
	"net/http"
	"time"
)

const (
	requestTimeout = 10 * time.Second
	retryWaitMin   = 100 * time.Millisecond
	retryWaitMax   = 1 * time.Second
	retryMax       = 3
	minAutoValue   = 1
	maxAutoValue   = 100
)

type target struct {
	method   string
	endpoint string
}

// The intentional error endpoint is excluded so generated traffic stays clean.
var targets = []target{
	{http.MethodGet, "/"},
	{http.MethodGet, "/health"},
	{http.MethodGet, "/api/data"},
	{http.MethodPost, "/api/process"},
	{http.MethodGet, "/api/chain"},
}

// TraceGenerator periodically calls the service's own endpoints over HTTP so
// the exported trace stream always has activity. Requests go through an
// instrumented retrying client, so each call produces an auto-trace span with
// a client span beneath it, and the server continues the same trace.
type TraceGenerator struct {
	baseURL  string
	interval time.Duration
	client   *http.Client
	tracer   trace.Tracer
	rng      *rand.Rand
	logger   *zap.Logger
}

func NewTraceGenerator(
	baseURL string,
	interval time.Duration,
	rng *rand.Rand,
	tracerProvider trace.TracerProvider,
	propagator propagation.TextMapPropagator,
	logger *zap.Logger,
) *TraceGenerator {
	retryableClient := retryablehttp.Client{
		HTTPClient: &http.Client{
			Timeout: requestTimeout,
			Transport: otelhttp.NewTransport(
				http.DefaultTransport,
				otelhttp.WithTracerProvider(tracerProvider),
				otelhttp.WithPropagators(propagator),
			),
		},
		RetryWaitMin: retryWaitMin,
		RetryWaitMax: retryWaitMax,
		RetryMax:     retryMax,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		Backoff:      retryablehttp.DefaultBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
	return &TraceGenerator{
		baseURL:  baseURL,
		interval: interval,
		client:   retryableClient.StandardClient(),
		tracer:   tracerProvider.Tracer("auto-trace"),
		rng:      rng,
		logger:   logger,
	}
}

// Start runs the generation loop until ctx is cancelled. The first call goes
// out immediately so a trace appears as soon as the service is up; failed
// calls are recorded on their span and never stop the loop. Returns nil once
// the context is done.
func (g *TraceGenerator) Start(ctx context.Context) error {
	g.logger.Info("Starting automatic trace generation", zap.Duration("interval", g.interval))
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		g.call(ctx)
		select {
		case <-ctx.Done():
			g.logger.Info("Stopping automatic trace generation")
			return nil
		case <-ticker.C:
		}
	}
}

func (g *TraceGenerator) call(ctx context.Context) {
	chosenTarget := targets[g.rng.Intn(len(targets))]
	ctx, span := g.tracer.Start(ctx, "auto-trace-call")
	defer span.End()
	span.SetAttributes(
		attribute.Bool("auto.generated", true),
		attribute.String("target.endpoint", chosenTarget.endpoint),
		attribute.String("target.method", chosenTarget.method),
	)

	req, err := g.newRequest(ctx, chosenTarget)
	if err != nil {
		g.logger.Error("Error encountered when building auto-trace request", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to build auto-trace request")
		return
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error(
			"Error encountered when calling target endpoint",
			zap.String("endpoint", chosenTarget.endpoint),
			zap.Error(err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "auto-trace call failed")
		return
	}
	defer func(Body io.ReadCloser) {
		_, _ = io.Copy(io.Discard, Body)
		err := Body.Close()
		if err != nil {
			g.logger.Error("Error encountered when closing response body", zap.Error(err))
		}
	}(resp.Body)

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	g.logger.Info(
		"Auto-trace call completed",
		zap.String("endpoint", chosenTarget.endpoint),
		zap.Int("status_code", resp.StatusCode),
	)
}

func (g *TraceGenerator) newRequest(ctx context.Context, chosenTarget target) (*http.Request, error) {
	url := g.baseURL + chosenTarget.endpoint
	if chosenTarget.method != http.MethodPost {
		return http.NewRequestWithContext(ctx, chosenTarget.method, url, nil)
	}

	body, err := json.Marshal(map[string]interface{}{
		"auto":  true,
		"value": minAutoValue + g.rng.Intn(maxAutoValue-minAutoValue+1),
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, chosenTarget.method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
