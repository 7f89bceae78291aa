package ports

import (
	"context"
	"time"

	"orders/internal/core/domain/model/order"
)

// OrderFilter holds normalized search predicates. Zero values mean no filter,
// except Customer which is always applied.
type OrderFilter struct {
	ProductName string
	Customer    string
	Status      *order.Status
	StartTime   *time.Time
	EndTime     *time.Time
}

// PageRequest addresses one page. The store reads PageSize rows starting at
// row PageIndex*PageSize.
type PageRequest struct {
	PageIndex int
	PageSize  int
}

// Offset returns the first row index of the page.
func (p PageRequest) Offset() int {
	return p.PageIndex * p.PageSize
}

// OrderPage is one page of matches plus the count of every match.
type OrderPage struct {
	Items []order.Snapshot
	Total int64
}

// OrderFinder is the read side of the order store.
type OrderFinder interface {
	// Get returns the snapshot of a single order, or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id int64) (order.Snapshot, error)

	// Search returns matching orders ordered by id ascending.
	Search(ctx context.Context, filter OrderFilter, page PageRequest) (OrderPage, error)
}
