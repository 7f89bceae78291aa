package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is a read-only copy of an order, safe to hand to other goroutines.
type Snapshot struct {
	ID          int64
	ProductName string
	Customer    string
	TotalAmount decimal.Decimal
	Currency    string
	Status      Status
	CreateTime  time.Time
	UpdateTime  time.Time
}
