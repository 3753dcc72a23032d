package handler

import "time"

// HomeResponseDTO is the service identity payload for the root endpoint
// @swagger:model HomeResponseDTO
type HomeResponseDTO struct {
	Message string `json:"message"`
	Service string `json:"service"`
	Status  string `json:"status"`
}

// HealthResponseDTO is the liveness payload
// @swagger:model HealthResponseDTO
type HealthResponseDTO struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// RecordDTO is one synthetic record in a data fetch response
// @swagger:model RecordDTO
type RecordDTO struct {
	Id        string    `json:"id"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// DataResponseDTO is the response to a simulated data fetch
// @swagger:model DataResponseDTO
type DataResponseDTO struct {
	Records []RecordDTO `json:"records"`
	// The number of synthetic records returned
	RecordCount int `json:"record_count"`
	// The simulated fetch duration in seconds
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
}

// ProcessResponseDTO is the processing summary for a submitted payload
// @swagger:model ProcessResponseDTO
type ProcessResponseDTO struct {
	Processed bool `json:"processed"`
	// The request body echoed back, or an empty object when none was sent
	Input  map[string]interface{} `json:"input"`
	Result int                    `json:"result"`
	// The simulated transform duration in seconds
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
}

// OperationDTO is the outcome of one chained sub-operation
// @swagger:model OperationDTO
type OperationDTO struct {
	Step  int `json:"step"`
	Value int `json:"value"`
}

// ChainResponseDTO summarizes a sequence of chained sub-operations
// @swagger:model ChainResponseDTO
type ChainResponseDTO struct {
	Operations []OperationDTO `json:"operations"`
	TotalSteps int            `json:"total_steps"`
}
