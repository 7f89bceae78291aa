package queries

import (
	"context"

	"orders/internal/core/ports"
)

// SearchOrdersQueryHandler runs filtered, paginated order searches.
type SearchOrdersQueryHandler struct {
	finder ports.OrderFinder
}

func NewSearchOrdersQueryHandler(finder ports.OrderFinder) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{finder: finder}
}

func (h SearchOrdersQueryHandler) Handle(
	ctx context.Context,
	query SearchOrdersQuery,
) (SearchOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return SearchOrdersQueryResponse{}, err
	}

	page := query.Page()
	result, err := h.finder.Search(ctx, query.Filter(), page)
	if err != nil {
		return SearchOrdersQueryResponse{}, err
	}

	orders := make([]GetOrderQueryResponse, 0, len(result.Items))
	for _, item := range result.Items {
		orders = append(orders, responseFromSnapshot(item))
	}

	return SearchOrdersQueryResponse{
		Orders:     orders,
		Total:      result.Total,
		TotalPages: totalPages(result.Total, page.PageSize),
	}, nil
}

func totalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((total + size - 1) / size)
}
