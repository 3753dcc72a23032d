package handler

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/Avi18971911/Haruspex/internal/trace_server/model"
	"github.com/Avi18971911/Haruspex/internal/trace_server/service"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"io"
	"net/http"
)

// ProcessHandler creates a handler for the simulated processing endpoint.
// The optional JSON body is validated and transformed under nested spans and
// echoed back in the processing summary.
// @Summary Process a payload
// @Description Runs the submitted payload through simulated validate and transform steps.
// @Tags demo
// @Accept json
// @Produce json
// @Param payload body object false "Optional arbitrary JSON object"
// @Success 200 {object} ProcessResponseDTO "Processing summary"
// @Failure 400 {object} ErrorMessage "Malformed request body"
// @Failure 500 {object} ErrorMessage "Internal server error"
// @Router /api/process [post]
func ProcessHandler(
	simulationService service.SimulationService,
	tracer trace.Tracer,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Info("Process endpoint called")
		ctx, span := tracer.Start(r.Context(), "process-data")
		defer span.End()
		span.SetAttributes(
			attribute.String("endpoint", "/api/process"),
			attribute.String("method", r.Method),
		)

		var input map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&input)
		if err != nil && !errors.Is(err, io.EOF) {
			logger.Error("Error encountered when decoding request body", zap.Error(err))
			HttpErrorWithSpan(w, span, err, "Invalid request payload", http.StatusBadRequest, logger)
			return
		}

		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logger.Error("Error encountered when closing request body", zap.Error(err))
			}
		}(r.Body)

		// An absent or null body processes as an empty payload.
		if input == nil {
			input = map[string]interface{}{}
		}

		if err := validateInput(ctx, simulationService, tracer, input); err != nil {
			logger.Error("Error encountered when validating input", zap.Error(err))
			HttpErrorWithSpan(w, span, err, "Internal server error", http.StatusInternalServerError, logger)
			return
		}

		summary, err := transformInput(ctx, simulationService, tracer, input)
		if err != nil {
			logger.Error("Error encountered when transforming input", zap.Error(err))
			HttpErrorWithSpan(w, span, err, "Internal server error", http.StatusInternalServerError, logger)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(ProcessResponseDTO{
			Processed:             true,
			Input:                 input,
			Result:                summary.Result,
			ProcessingTimeSeconds: summary.Elapsed.Seconds(),
		})
		if err != nil {
			logger.Error("Error encountered when encoding response", zap.Error(err))
			HttpErrorWithSpan(w, span, err, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
	}
}

// validateInput wraps the validation step in its own span so the step's
// duration and input size are visible in the trace.
func validateInput(
	ctx context.Context,
	simulationService service.SimulationService,
	tracer trace.Tracer,
	input map[string]interface{},
) error {
	ctx, span := tracer.Start(ctx, "validate-input")
	defer span.End()

	size, err := simulationService.ValidateInput(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "input validation failed")
		return err
	}
	span.SetAttributes(attribute.Int("input.size", size))
	return nil
}

// transformInput wraps the transformation step in its own span.
func transformInput(
	ctx context.Context,
	simulationService service.SimulationService,
	tracer trace.Tracer,
	input map[string]interface{},
) (*model.ProcessSummary, error) {
	ctx, span := tracer.Start(ctx, "transform-data")
	defer span.End()

	summary, err := simulationService.TransformInput(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "input transformation failed")
		return nil, err
	}
	span.SetAttributes(attribute.Float64("transform.time_seconds", summary.Elapsed.Seconds()))
	return summary, nil
}
