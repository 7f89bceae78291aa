// Package http exposes the order service over JSON/HTTP using echo.
//
// Order endpoints answer with the Response envelope. The login endpoint and
// authentication failures use a plain {"error": ...} body.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Use case ports consumed by the server.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (order.Snapshot, error)
	}

	UpdateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (commands.UpdateOrderStatusResult, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, bool, error)
	}

	SearchOrdersHandler interface {
		Handle(ctx context.Context, query queries.SearchOrdersQuery) (queries.SearchOrdersQueryResponse, error)
	}
)

// OrderRecorder counts business outcomes.
type OrderRecorder interface {
	OrderCreated()
	StatusUpdated(result string)
}

// Handlers groups the use cases behind the order routes.
type Handlers struct {
	CreateOrder  CreateOrderHandler
	UpdateStatus UpdateOrderStatusHandler
	GetOrder     GetOrderHandler
	SearchOrders SearchOrdersHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	recorder OrderRecorder
	location *time.Location
	logger   *slog.Logger
}

// NewServer creates the order endpoints. Times are parsed and rendered in
// location; a nil location means time.Local.
func NewServer(handlers Handlers, recorder OrderRecorder, location *time.Location, logger *slog.Logger) *Server {
	if location == nil {
		location = time.Local
	}
	return &Server{
		handlers: handlers,
		recorder: recorder,
		location: location,
		logger:   logger.With("component", "http_server"),
	}
}

// CreateOrderRequest is the body of POST /order/create.
type CreateOrderRequest struct {
	ProductName string      `json:"productName" validate:"required,max=255"`
	Customer    string      `json:"customer"    validate:"required,max=255"`
	TotalAmount json.Number `json:"totalAmount" validate:"required,numeric"`
	Currency    string      `json:"currency"    validate:"max=16"`
}

// OrderView is the JSON rendering of one order.
type OrderView struct {
	ID          int64       `json:"id"`
	ProductName string      `json:"productName"`
	TotalAmount json.Number `json:"totalAmount"`
	Status      int         `json:"status"`
	Customer    string      `json:"customer"`
	Currency    string      `json:"currency"`
	CreateTime  string      `json:"createtime"`
	UpdateTime  string      `json:"updatetime"`
}

// SearchView is the data of a successful search.
type SearchView struct {
	Orders     []OrderView `json:"orders"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"totalPages"`
}

// CreateOrder handles POST /order/create.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, badRequest(map[string]string{"request": "malformed JSON body"}))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, badRequest(FormatValidationError(err)))
	}

	amount, err := decimal.NewFromString(req.TotalAmount.String())
	if err != nil {
		return c.JSON(http.StatusBadRequest, badRequest(map[string]string{"totalAmount": "totalAmount must be a decimal number"}))
	}

	cmd, err := commands.NewCreateOrderCommand(req.ProductName, req.Customer, amount, req.Currency)
	if err != nil {
		return c.JSON(http.StatusBadRequest, badRequest(err.Error()))
	}

	ctx := c.Request().Context()
	created, err := s.handlers.CreateOrder.Handle(ctx, cmd)
	if err != nil {
		s.logger.ErrorContext(ctx, "create order failed",
			"username", requestUser(c),
			"customer", cmd.Customer(),
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, failure(CodeError, msgError))
	}

	s.recorder.OrderCreated()
	return c.JSON(http.StatusOK, success(map[string]int64{"id": created.ID}))
}

// RetrieveOrder handles GET /order/retrieve?id=.
func (s *Server) RetrieveOrder(c echo.Context) error {
	var id int64
	if err := echo.QueryParamsBinder(c).MustInt64("id", &id).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, badRequest(map[string]string{"id": "id must be an integer"}))
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return c.JSON(http.StatusBadRequest, badRequest(err.Error()))
	}

	ctx := c.Request().Context()
	resp, found, err := s.handlers.GetOrder.Handle(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "retrieve order failed",
			"username", requestUser(c),
			"order_id", id,
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, failure(CodeError, msgError))
	}
	if !found {
		return c.JSON(http.StatusNotFound, failure(CodeNotFound, msgNotFound))
	}

	return c.JSON(http.StatusOK, success(s.view(resp)))
}

// UpdateOrderStatus handles PATCH /order/update?id=&status=.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	var (
		id     int64
		status int
	)
	if err := echo.QueryParamsBinder(c).
		MustInt64("id", &id).
		MustInt("status", &status).
		BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, badRequest(map[string]string{"request": "id and status must be integers"}))
	}

	if status < order.Created.Code() || status > order.Cancelled.Code() {
		return c.JSON(http.StatusForbidden, failure(CodeNotAllowed, msgNotAllowed))
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(id, status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, badRequest(err.Error()))
	}

	ctx := c.Request().Context()
	result, err := s.handlers.UpdateStatus.Handle(ctx, cmd)
	s.recorder.StatusUpdated(result.String())

	switch result {
	case commands.UpdateSucceeded:
		return c.JSON(http.StatusOK, success(nil))
	case commands.UpdateNotFound:
		return c.JSON(http.StatusNotFound, failure(CodeNotFound, msgNotFound))
	case commands.UpdateNotAllowed:
		return c.JSON(http.StatusForbidden, failure(CodeNotAllowed, msgNotAllowed))
	default:
		s.logger.ErrorContext(ctx, "update order status failed",
			"username", requestUser(c),
			"order_id", id,
			"status", status,
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, failure(CodeError, msgUpdateFailed))
	}
}

// SearchOrders handles GET /order/search.
func (s *Server) SearchOrders(c echo.Context) error {
	var (
		productName, customer    string
		statusRaw                string
		startTimeRaw, endTimeRaw string
	)
	start, count := 0, 10
	if err := echo.QueryParamsBinder(c).
		String("productName", &productName).
		String("customer", &customer).
		String("status", &statusRaw).
		String("starttime", &startTimeRaw).
		String("endtime", &endTimeRaw).
		Int("start", &start).
		Int("count", &count).
		BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, badRequest(map[string]string{"request": "start and count must be integers"}))
	}

	criteria := queries.SearchCriteria{
		ProductName: productName,
		Customer:    customer,
		Offset:      start,
		Limit:       count,
	}

	if statusRaw = strings.TrimSpace(statusRaw); statusRaw != "" {
		code, err := strconv.Atoi(statusRaw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, badRequest(map[string]string{"status": "status must be an integer"}))
		}
		criteria.StatusCode = &code
	}

	var err error
	if criteria.StartTime, err = s.parseTime(startTimeRaw); err != nil {
		return c.JSON(http.StatusBadRequest, badRequest(map[string]string{"starttime": "starttime must match " + DateTimeLayout}))
	}
	if criteria.EndTime, err = s.parseTime(endTimeRaw); err != nil {
		return c.JSON(http.StatusBadRequest, badRequest(map[string]string{"endtime": "endtime must match " + DateTimeLayout}))
	}

	query, err := queries.NewSearchOrdersQuery(criteria)
	if err != nil {
		if errs.IsValidationError(err) {
			return c.JSON(http.StatusBadRequest, badRequest(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, failure(CodeError, msgError))
	}

	ctx := c.Request().Context()
	result, err := s.handlers.SearchOrders.Handle(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "search orders failed",
			"username", requestUser(c),
			"customer", criteria.Customer,
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, failure(CodeError, msgError))
	}

	views := make([]OrderView, 0, len(result.Orders))
	for _, o := range result.Orders {
		views = append(views, s.view(o))
	}

	return c.JSON(http.StatusOK, success(SearchView{
		Orders:     views,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	}))
}

// parseTime returns nil for a blank value.
func (s *Server) parseTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation(DateTimeLayout, raw, s.location)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Server) view(resp queries.GetOrderQueryResponse) OrderView {
	return OrderView{
		ID:          resp.ID,
		ProductName: resp.ProductName,
		TotalAmount: json.Number(resp.TotalAmount.String()),
		Status:      resp.Status.Code(),
		Customer:    resp.Customer,
		Currency:    resp.Currency,
		CreateTime:  resp.CreateTime.In(s.location).Format(DateTimeLayout),
		UpdateTime:  resp.UpdateTime.In(s.location).Format(DateTimeLayout),
	}
}
