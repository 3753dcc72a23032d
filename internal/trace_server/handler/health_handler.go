package handler

import (
	"encoding/json"
	"go.uber.org/zap"
	"net/http"
)

// HealthHandler creates a handler for the liveness endpoint. It deliberately
// opens no child span; the only trace produced for a health check is the
// root span from the server instrumentation.
// @Summary Health check
// @Description Reports whether the service is alive.
// @Tags demo
// @Produce json
// @Success 200 {object} HealthResponseDTO "Service is healthy"
// @Failure 500 {object} ErrorMessage "Internal server error"
// @Router /health [get]
func HealthHandler(
	serviceName string,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Info("Health check endpoint called")

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(HealthResponseDTO{
			Status:  "healthy",
			Service: serviceName,
		})
		if err != nil {
			logger.Error("Error encountered when encoding response", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
	}
}
