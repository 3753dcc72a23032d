package handler

import (
	"encoding/json"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"net/http"
)

type ErrorMessage struct {
	Message string `json:"message"`
}

func HttpError(w http.ResponseWriter, message string, statusCode int, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(ErrorMessage{Message: message})
	if err != nil {
		logger.Error("Failed to encode error message", zap.Error(err))
	}
}

// HttpErrorWithSpan records the error on the given span, marks the span
// status as failed, and writes the JSON error body in a single step so no
// error path can produce a response without flagging its span.
func HttpErrorWithSpan(
	w http.ResponseWriter,
	span trace.Span,
	err error,
	message string,
	statusCode int,
	logger *zap.Logger,
) {
	span.RecordError(err)
	span.SetStatus(codes.Error, message)
	HttpError(w, message, statusCode, logger)
}
