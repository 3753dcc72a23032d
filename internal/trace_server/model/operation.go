package model

import "time"

// ProcessSummary is the outcome of the validate/transform pipeline for a
// single processing request.
type ProcessSummary struct {
	Result  int
	Elapsed time.Duration
}

// OperationResult is the outcome of one step in a chained sequence of
// simulated sub-operations.
type OperationResult struct {
	Step    int
	Value   int
	Elapsed time.Duration
}
