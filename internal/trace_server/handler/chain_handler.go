package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/Avi18971911/Haruspex/internal/trace_server/model"
	"github.com/Avi18971911/Haruspex/internal/trace_server/service"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"net/http"
)

const totalChainSteps = 3

// ChainHandler creates a handler for the chained operations endpoint. Each
// step runs under its own span nested beneath the chain span.
// @Summary Run chained operations
// @Description Executes a fixed sequence of simulated sub-operations.
// @Tags demo
// @Produce json
// @Success 200 {object} ChainResponseDTO "Chain summary"
// @Failure 500 {object} ErrorMessage "Internal server error"
// @Router /api/chain [get]
func ChainHandler(
	simulationService service.SimulationService,
	tracer trace.Tracer,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Info("Chain operations endpoint called")
		ctx, span := tracer.Start(r.Context(), "chain-operations")
		defer span.End()
		span.SetAttributes(attribute.String("endpoint", "/api/chain"))

		results := make([]model.OperationResult, 0, totalChainSteps)
		for step := 1; step <= totalChainSteps; step++ {
			result, err := runOperation(ctx, simulationService, tracer, step)
			if err != nil {
				logger.Error(
					"Error encountered when running chained operation",
					zap.Int("step", step),
					zap.Error(err),
				)
				HttpErrorWithSpan(w, span, err, "Internal server error", http.StatusInternalServerError, logger)
				return
			}
			results = append(results, *result)
		}

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(operationsToChainResponseDTO(results))
		if err != nil {
			logger.Error("Error encountered when encoding response", zap.Error(err))
			HttpErrorWithSpan(w, span, err, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
	}
}

// runOperation wraps one chained step in a span named after its position.
func runOperation(
	ctx context.Context,
	simulationService service.SimulationService,
	tracer trace.Tracer,
	step int,
) (*model.OperationResult, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("operation-%d", step))
	defer span.End()
	span.SetAttributes(attribute.Int("operation.number", step))

	result, err := simulationService.RunOperation(ctx, step)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chained operation failed")
		return nil, err
	}
	return result, nil
}
