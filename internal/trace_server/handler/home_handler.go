package handler

import (
	"encoding/json"
	"fmt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"net/http"
)

// HomeHandler creates a handler for the service identity endpoint.
// @Summary Service identity
// @Description Returns a greeting along with the service name and status.
// @Tags demo
// @Produce json
// @Success 200 {object} HomeResponseDTO "Service identity"
// @Failure 500 {object} ErrorMessage "Internal server error"
// @Router / [get]
func HomeHandler(
	serviceName string,
	tracer trace.Tracer,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Info("Root endpoint called")
		_, span := tracer.Start(r.Context(), "home-handler")
		defer span.End()
		span.SetAttributes(
			attribute.String("endpoint", "/"),
			attribute.String("method", r.Method),
		)

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(HomeResponseDTO{
			Message: fmt.Sprintf("Welcome to %s", serviceName),
			Service: serviceName,
			Status:  "running",
		})
		if err != nil {
			logger.Error("Error encountered when encoding response", zap.Error(err))
			HttpErrorWithSpan(w, span, err, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
	}
}
