package handler

import (
	"github.com/Avi18971911/Haruspex/internal/trace_server/model"
	"time"
)

func recordsToDataResponseDTO(records []model.Record, processingTime time.Duration) DataResponseDTO {
	recordDTOs := make([]RecordDTO, len(records))
	for i, record := range records {
		recordDTOs[i] = RecordDTO{
			Id:        record.Id,
			Amount:    record.Amount.String(),
			CreatedAt: record.CreatedAt,
		}
	}
	return DataResponseDTO{
		Records:               recordDTOs,
		RecordCount:           len(records),
		ProcessingTimeSeconds: processingTime.Seconds(),
	}
}

func operationsToChainResponseDTO(results []model.OperationResult) ChainResponseDTO {
	operations := make([]OperationDTO, len(results))
	for i, result := range results {
		operations[i] = OperationDTO{
			Step:  result.Step,
			Value: result.Value,
		}
	}
	return ChainResponseDTO{
		Operations: operations,
		TotalSteps: len(operations),
	}
}
