package router

import (
	"github.com/Avi18971911/Haruspex/internal/trace_server/handler"
	"github.com/Avi18971911/Haruspex/internal/trace_server/service"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"net/http"
)
import "github.com/gorilla/mux"

// CreateRouter wires every endpoint to its handler and wraps the result in
// otelhttp instrumentation so each request carries a root server span named
// "<METHOD> <path>". The tracer provider and propagator are passed in
// explicitly rather than read from process-wide globals.
func CreateRouter(
	serviceName string,
	simulationService service.SimulationService,
	tracerProvider trace.TracerProvider,
	propagator propagation.TextMapPropagator,
	logger *zap.Logger,
) http.Handler {
	tracer := tracerProvider.Tracer("trace-server")
	r := mux.NewRouter()

	r.Handle(
		"/", handler.HomeHandler(
			serviceName,
			tracer,
			logger,
		),
	).Methods("GET")

	r.Handle(
		"/health", handler.HealthHandler(
			serviceName,
			logger,
		),
	).Methods("GET")

	r.Handle(
		"/api/data", handler.DataHandler(
			simulationService,
			tracer,
			logger,
		),
	).Methods("GET")

	r.Handle(
		"/api/process", handler.ProcessHandler(
			simulationService,
			tracer,
			logger,
		),
	).Methods("POST")

	r.Handle(
		"/api/error", handler.ErrorHandler(
			simulationService,
			tracer,
			logger,
		),
	).Methods("GET")

	r.Handle(
		"/api/chain", handler.ChainHandler(
			simulationService,
			tracer,
			logger,
		),
	).Methods("GET")

	return otelhttp.NewHandler(
		r,
		"http-server",
		otelhttp.WithTracerProvider(tracerProvider),
		otelhttp.WithPropagators(propagator),
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
