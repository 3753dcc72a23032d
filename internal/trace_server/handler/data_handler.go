package handler

import (
	"encoding/json"
	"github.com/Avi18971911/Haruspex/internal/trace_server/service"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"net/http"
	"time"
)

// DataHandler creates a handler for the simulated data fetch endpoint.
// @Summary Fetch synthetic records
// @Description Simulates a data fetch with a bounded random delay and returns synthetic records.
// @Tags demo
// @Produce json
// @Success 200 {object} DataResponseDTO "Synthetic records and elapsed time"
// @Failure 500 {object} ErrorMessage "Internal server error"
// @Router /api/data [get]
func DataHandler(
	simulationService service.SimulationService,
	tracer trace.Tracer,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Info("Data endpoint called")
		ctx, span := tracer.Start(r.Context(), "get-data")
		defer span.End()
		span.SetAttributes(attribute.String("endpoint", "/api/data"))

		start := time.Now()
		records, err := simulationService.FetchRecords(ctx)
		if err != nil {
			logger.Error("Error encountered when fetching records", zap.Error(err))
			HttpErrorWithSpan(w, span, err, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
		processingTime := time.Since(start)

		span.SetAttributes(
			attribute.Float64("processing.time_seconds", processingTime.Seconds()),
			attribute.Int("record.count", len(records)),
		)

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(recordsToDataResponseDTO(records, processingTime))
		if err != nil {
			logger.Error("Error encountered when encoding response", zap.Error(err))
			HttpErrorWithSpan(w, span, err, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
	}
}
