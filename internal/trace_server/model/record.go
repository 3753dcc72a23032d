package model

import (
	"github.com/shopspring/decimal"
	"time"
)

// Record is one synthetic data row produced by the data fetch simulation.
type Record struct {
	Id        string
	Amount    decimal.Decimal
	CreatedAt time.Time
}
