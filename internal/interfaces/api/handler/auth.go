package handler

import (
	"net/http"

	"pillulu/internal/application/dto"
	"pillulu/internal/application/service"
	"pillulu/internal/interfaces/api/middleware"
	"pillulu/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AuthHandler serves /api/auth.
type AuthHandler struct {
	authSvc service.AuthService
	log     logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc service.AuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, log: log}
}

// Register creates an account and returns a token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	res, err := h.authSvc.Register(c.Request().Context(), req)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Login exchanges credentials for a token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	res, err := h.authSvc.Login(c.Request().Context(), req)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Me never fails; clients use it to check whether they are signed in.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, h.authSvc.Me(c.Request().Context(), middleware.BearerToken(c)))
}
