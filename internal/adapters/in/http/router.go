package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RouterConfig wires the handlers and cross-cutting dependencies of the API.
type RouterConfig struct {
	Server         *Server
	Auth           *AuthHandler
	Tokens         TokenParser
	Users          UserDirectory
	Recorder       RequestRecorder
	MetricsHandler http.Handler
}

// NewRouter registers every route on a fresh echo instance.
//
//	GET   /health
//	GET   /metrics
//	POST  /auth/login
//	POST  /order/create     (bearer)
//	GET   /order/retrieve   (bearer)
//	PATCH /order/update     (bearer)
//	GET   /order/search     (bearer)
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()

	e.Use(middleware.Recover())
	if cfg.Recorder != nil {
		e.Use(RequestMetrics(cfg.Recorder))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.MetricsHandler))
	}

	e.POST("/auth/login", cfg.Auth.Login)

	orders := e.Group("/order", BearerAuth(cfg.Tokens, cfg.Users))
	orders.POST("/create", cfg.Server.CreateOrder)
	orders.GET("/retrieve", cfg.Server.RetrieveOrder)
	orders.PATCH("/update", cfg.Server.UpdateOrderStatus)
	orders.GET("/search", cfg.Server.SearchOrders)

	return e
}
