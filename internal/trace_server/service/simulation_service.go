package service

import (
	"context"
	"github.com/Avi18971911/Haruspex/internal/trace_server/model"
)

// SimulationService produces artificial bounded delays and synthetic results
// for the demo endpoints. Implementations are safe for concurrent use and
// deterministic for a given random seed.
type SimulationService interface {
	FetchRecords(ctx context.Context) ([]model.Record, error)
	ValidateInput(ctx context.Context, input map[string]interface{}) (int, error)
	TransformInput(ctx context.Context, input map[string]interface{}) (*model.ProcessSummary, error)
	RunOperation(ctx context.Context, step int) (*model.OperationResult, error)
	Fail(ctx context.Context) error
}
