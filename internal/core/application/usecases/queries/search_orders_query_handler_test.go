package queries_test

import (
	"errors"
	"testing"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchOrdersQueryHandler_Handle(t *testing.T) {
	tests := []struct {
		name           string
		limit          int
		items          []order.Snapshot
		total          int64
		wantTotalPages int
	}{
		{name: "no matches", limit: 10, total: 0, wantTotalPages: 0},
		{name: "single partial page", limit: 10, items: []order.Snapshot{snapshot(1), snapshot(2)}, total: 2, wantTotalPages: 1},
		{name: "exact pages", limit: 2, items: []order.Snapshot{snapshot(1), snapshot(2)}, total: 4, wantTotalPages: 2},
		{name: "remainder page", limit: 2, items: []order.Snapshot{snapshot(1), snapshot(2)}, total: 5, wantTotalPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			q, err := queries.NewSearchOrdersQuery(queries.SearchCriteria{Customer: "Alice", Limit: tt.limit})
			require.NoError(t, err)

			finder := new(MockOrderFinder)
			finder.On("Search", ctx, q.Filter(), q.Page()).
				Return(ports.OrderPage{Items: tt.items, Total: tt.total}, nil).Once()

			resp, err := queries.NewSearchOrdersQueryHandler(finder).Handle(ctx, q)

			require.NoError(t, err)
			assert.Equal(t, tt.total, resp.Total)
			assert.Equal(t, tt.wantTotalPages, resp.TotalPages)
			require.Len(t, resp.Orders, len(tt.items))
			assert.NotNil(t, resp.Orders)
			for i, item := range tt.items {
				assert.Equal(t, item.ID, resp.Orders[i].ID)
			}
			finder.AssertExpectations(t)
		})
	}
}

func TestSearchOrdersQueryHandler_Handle_StorageError(t *testing.T) {
	ctx := t.Context()
	q, err := queries.NewSearchOrdersQuery(queries.SearchCriteria{Customer: "Alice", Limit: 1})
	require.NoError(t, err)

	finder := new(MockOrderFinder)
	finder.On("Search", ctx, mock.Anything, mock.Anything).Return(ports.OrderPage{}, errors.New("boom")).Once()

	_, err = queries.NewSearchOrdersQueryHandler(finder).Handle(ctx, q)
	require.Error(t, err)
}

func TestSearchOrdersQueryHandler_Handle_NotConstructed(t *testing.T) {
	finder := new(MockOrderFinder)

	_, err := queries.NewSearchOrdersQueryHandler(finder).Handle(t.Context(), queries.SearchOrdersQuery{})

	require.ErrorIs(t, err, queries.ErrSearchOrdersQueryIsNotConstructed)
}
