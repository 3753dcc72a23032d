package handler

import (
	"github.com/Avi18971911/Haruspex/internal/trace_server/service"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"net/http"
)

// ErrorHandler creates a handler for the intentional failure endpoint. The
// simulation service always returns an error here; the handler maps it to a
// 500 response and marks the span as failed in the same step.
// @Summary Trigger an intentional error
// @Description Always fails, recording the error on the request's span.
// @Tags demo
// @Produce json
// @Failure 500 {object} ErrorMessage "The intentional error"
// @Router /api/error [get]
func ErrorHandler(
	simulationService service.SimulationService,
	tracer trace.Tracer,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Error("Error endpoint called - triggering error")
		ctx, span := tracer.Start(r.Context(), "error-handler")
		defer span.End()
		span.SetAttributes(
			attribute.String("endpoint", "/api/error"),
			attribute.Bool("error.intentional", true),
		)

		err := simulationService.Fail(ctx)
		span.SetAttributes(attribute.Bool("error", true))
		HttpErrorWithSpan(
			w,
			span,
			err,
			"This is an intentional error for testing",
			http.StatusInternalServerError,
			logger,
		)
	}
}
