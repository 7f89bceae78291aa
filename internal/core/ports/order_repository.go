// Package ports defines the contracts between the order use cases and
// infrastructure: persistence, read-side search, and event publication.
package ports

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order and assigns the store-generated id to it.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and update time of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. A missing order is an errs.ObjectNotFoundError.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate retrieves an order by id and locks its row until the
	// surrounding transaction ends. Must be called after UnitOfWork.Begin.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)
}
