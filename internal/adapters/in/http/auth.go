package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Authenticator checks login credentials.
type Authenticator interface {
	Authenticate(username, password string) error
}

// TokenIssuer signs a token for an authenticated user.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// AuthHandler serves POST /auth/login.
type AuthHandler struct {
	users  Authenticator
	issuer TokenIssuer
	logger *slog.Logger
}

func NewAuthHandler(users Authenticator, issuer TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		issuer: issuer,
		logger: logger.With("component", "auth_handler"),
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, errorBody{Error: "invalid_credentials"})
	}

	if err := h.users.Authenticate(req.Username, req.Password); err != nil {
		h.logger.WarnContext(ctx, "login rejected", "username", req.Username)
		return c.JSON(http.StatusUnauthorized, errorBody{Error: "invalid_credentials"})
	}

	token, err := h.issuer.Issue(req.Username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", "username", req.Username, "error", err)
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "internal_error"})
	}

	h.logger.InfoContext(ctx, "login succeeded", "username", req.Username)
	return c.JSON(http.StatusOK, LoginResponse{Token: token})
}
