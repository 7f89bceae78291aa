package http

import (
	"net/http"
	"strings"
	"time"

	"orders/internal/pkg/jwtauth"

	"github.com/labstack/echo/v4"
)

const (
	usernameKey    = "username"
	unmatchedRoute = "unmatched"
)

// RequestRecorder receives one observation per served request.
type RequestRecorder interface {
	ObserveHTTPRequest(method, route string, status int, elapsed time.Duration)
}

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(token string) (*jwtauth.Claims, error)
}

// UserDirectory reports whether a token subject is still a known account.
type UserDirectory interface {
	Knows(username string) bool
}

// RequestMetrics records method, matched route and status of every request.
// The route is the registered path, so path parameters do not explode label
// cardinality.
func RequestMetrics(recorder RequestRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			recorder.ObserveHTTPRequest(c.Request().Method, route, c.Response().Status, time.Since(start))

			return nil
		}
	}
}

// BearerAuth rejects requests without a valid "Authorization: Bearer" token,
// and tokens whose subject users does not know. A nil users accepts any
// subject. The subject is stored in the context under "username".
func BearerAuth(parser TokenParser, users UserDirectory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "missing_token"})
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "invalid_token"})
			}

			claims, err := parser.Parse(strings.TrimSpace(token))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "invalid_token"})
			}
			if users != nil && !users.Knows(claims.Subject) {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "invalid_token"})
			}

			c.Set(usernameKey, claims.Subject)
			return next(c)
		}
	}
}

// requestUser returns the authenticated username, or "" outside BearerAuth.
func requestUser(c echo.Context) string {
	username, _ := c.Get(usernameKey).(string)
	return username
}
