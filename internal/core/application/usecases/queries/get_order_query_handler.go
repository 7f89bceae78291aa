package queries

import (
	"context"
	"errors"

	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// GetOrderQueryHandler looks up one order.
//
// Example:
//
//	query, _ := NewGetOrderQuery(42)
//	resp, found, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	if !found {
//	    // 404
//	}
type GetOrderQueryHandler struct {
	finder ports.OrderFinder
}

func NewGetOrderQueryHandler(finder ports.OrderFinder) GetOrderQueryHandler {
	return GetOrderQueryHandler{finder: finder}
}

// Handle reports a missing order through the found flag, not through err.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, bool, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, false, err
	}

	snapshot, err := h.finder.Get(ctx, query.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return GetOrderQueryResponse{}, false, nil
	}
	if err != nil {
		return GetOrderQueryResponse{}, false, err
	}

	return responseFromSnapshot(snapshot), true, nil
}
