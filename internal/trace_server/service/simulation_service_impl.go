package service

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/Avi18971911/Haruspex/internal/trace_server/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"math/rand"
	"sync"
	"time"
)

const (
	minFetchDelay     = 100 * time.Millisecond
	maxFetchDelay     = 500 * time.Millisecond
	validateDelay     = 100 * time.Millisecond
	minTransformDelay = 200 * time.Millisecond
	maxTransformDelay = 700 * time.Millisecond
	minOperationDelay = 50 * time.Millisecond
	maxOperationDelay = 150 * time.Millisecond

	minRecordCount = 2
	maxRecordCount = 5
	maxAmountCents = 10000
	minResult      = 100
	maxResult      = 999
	minStepValue   = 1
	maxStepValue   = 100
)

type SimulationServiceImpl struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *zap.Logger
}

func CreateNewSimulationServiceImpl(rng *rand.Rand, logger *zap.Logger) *SimulationServiceImpl {
	return &SimulationServiceImpl{
		rng:    rng,
		logger: logger,
	}
}

func (s *SimulationServiceImpl) FetchRecords(ctx context.Context) ([]model.Record, error) {
	delay := s.randomDuration(minFetchDelay, maxFetchDelay)
	if err := sleepFor(ctx, delay); err != nil {
		return nil, err
	}

	count := s.randomInt(minRecordCount, maxRecordCount)
	records := make([]model.Record, count)
	for i := range records {
		records[i] = model.Record{
			Id:        s.randomId(),
			Amount:    s.randomAmount(),
			CreatedAt: time.Now().UTC(),
		}
	}
	s.logger.Info("Generated synthetic records", zap.Int("count", count))
	return records, nil
}

func (s *SimulationServiceImpl) ValidateInput(
	ctx context.Context,
	input map[string]interface{},
) (int, error) {
	encoded, err := json.Marshal(input)
	if err != nil {
		return 0, fmt.Errorf("unable to measure input size: %w", err)
	}
	s.logger.Info("Validating input", zap.Int("input_size", len(encoded)))

	if err := sleepFor(ctx, validateDelay); err != nil {
		return 0, err
	}
	return len(encoded), nil
}

func (s *SimulationServiceImpl) TransformInput(
	ctx context.Context,
	input map[string]interface{},
) (*model.ProcessSummary, error) {
	delay := s.randomDuration(minTransformDelay, maxTransformDelay)
	if err := sleepFor(ctx, delay); err != nil {
		return nil, err
	}

	summary := &model.ProcessSummary{
		Result:  s.randomInt(minResult, maxResult),
		Elapsed: delay,
	}
	s.logger.Info(
		"Processing completed",
		zap.Any("input", input),
		zap.Int("result", summary.Result),
	)
	return summary, nil
}

func (s *SimulationServiceImpl) RunOperation(
	ctx context.Context,
	step int,
) (*model.OperationResult, error) {
	delay := s.randomDuration(minOperationDelay, maxOperationDelay)
	if err := sleepFor(ctx, delay); err != nil {
		return nil, err
	}

	result := &model.OperationResult{
		Step:    step,
		Value:   s.randomInt(minStepValue, maxStepValue),
		Elapsed: delay,
	}
	s.logger.Info("Operation completed", zap.Int("step", step), zap.Int("value", result.Value))
	return result, nil
}

func (s *SimulationServiceImpl) Fail(_ context.Context) error {
	s.logger.Error("Triggering intentional error")
	return model.ErrIntentional
}

// sleepFor blocks for d or until ctx is cancelled, whichever comes first.
func sleepFor(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// The rand.Rand behind these helpers is not goroutine safe, and handlers
// call into the service concurrently.
func (s *SimulationServiceImpl) randomDuration(min, max time.Duration) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + time.Duration(s.rng.Int63n(int64(max-min)+1))
}

func (s *SimulationServiceImpl) randomInt(min, max int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Intn(max-min+1)
}

func (s *SimulationServiceImpl) randomAmount() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decimal.New(int64(s.rng.Intn(maxAmountCents))+1, -2)
}

// randomId draws the UUID bytes from the seeded source so record ids are
// reproducible for a given seed. rand.Rand.Read cannot fail.
func (s *SimulationServiceImpl) randomId() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := uuid.NewRandomFromReader(s.rng)
	return id.String()
}
