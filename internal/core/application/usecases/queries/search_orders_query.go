package queries

import (
	"errors"
	"strings"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrSearchOrdersQueryIsNotConstructed = errors.New(
	"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
)

// SearchCriteria is the raw search input as received from a caller.
type SearchCriteria struct {
	ProductName string
	Customer    string
	// StatusCode is decoded leniently: an unknown code disables the status filter.
	StatusCode *int
	StartTime  *time.Time
	EndTime    *time.Time
	Offset     int
	Limit      int
}

// SearchOrdersQuery is a normalized search. Build it with NewSearchOrdersQuery.
//
// Pagination addresses whole pages: the page index is offset/limit rounded
// down, so an offset of 15 with a limit of 10 returns rows 10..19.
type SearchOrdersQuery struct {
	filter ports.OrderFilter
	page   ports.PageRequest

	guard guard.ConstructorGuard
}

func NewSearchOrdersQuery(criteria SearchCriteria) (SearchOrdersQuery, error) {
	var validationErrs []error

	customer := strings.TrimSpace(criteria.Customer)
	if customer == "" {
		validationErrs = append(validationErrs, errs.NewValueIsRequiredError("customer"))
	}
	if criteria.Offset < 0 {
		validationErrs = append(validationErrs,
			errs.NewValueIsOutOfRangeError("start", criteria.Offset, 0, "unbounded"))
	}
	if criteria.Limit <= 0 {
		validationErrs = append(validationErrs,
			errs.NewValueIsOutOfRangeError("count", criteria.Limit, 1, "unbounded"))
	}
	if err := errors.Join(validationErrs...); err != nil {
		return SearchOrdersQuery{}, err
	}

	filter := ports.OrderFilter{
		ProductName: strings.TrimSpace(criteria.ProductName),
		Customer:    customer,
		StartTime:   criteria.StartTime,
		EndTime:     criteria.EndTime,
	}
	if criteria.StatusCode != nil {
		if status, err := order.StatusFromCode(*criteria.StatusCode); err == nil {
			filter.Status = &status
		}
	}

	pageSize := max(1, criteria.Limit)

	return SearchOrdersQuery{
		filter: filter,
		page: ports.PageRequest{
			PageIndex: criteria.Offset / pageSize,
			PageSize:  pageSize,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

func (q SearchOrdersQuery) Filter() ports.OrderFilter {
	return q.filter
}

func (q SearchOrdersQuery) Page() ports.PageRequest {
	return q.page
}

// SearchOrdersQueryResponse holds one page of matches. Total counts all matches.
type SearchOrdersQueryResponse struct {
	Orders     []GetOrderQueryResponse
	Total      int64
	TotalPages int
}
