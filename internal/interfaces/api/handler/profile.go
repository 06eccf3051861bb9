package handler

import (
	"net/http"

	"pillulu/internal/application/dto"
	"pillulu/internal/application/service"
	"pillulu/internal/interfaces/api/middleware"
	"pillulu/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// UserHandler serves /api/user. All routes require a signed-in user.
type UserHandler struct {
	userSvc service.UserService
	log     logger.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userSvc service.UserService, log logger.Logger) *UserHandler {
	return &UserHandler{userSvc: userSvc, log: log}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, h.userSvc.GetProfile(c.Request().Context(), middleware.CurrentUser(c)))
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req dto.ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	res, err := h.userSvc.UpdateProfile(c.Request().Context(), middleware.CurrentUser(c), req)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *UserHandler) GetEmail(c echo.Context) error {
	return c.JSON(http.StatusOK, h.userSvc.GetEmail(c.Request().Context(), middleware.CurrentUser(c)))
}

func (h *UserHandler) UpdateEmail(c echo.Context) error {
	var req dto.EmailUpdateRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	res, err := h.userSvc.UpdateEmail(c.Request().Context(), middleware.CurrentUser(c), req)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// IssueLineLinkCode returns a fresh code to send to the LINE bot.
func (h *UserHandler) IssueLineLinkCode(c echo.Context) error {
	res, err := h.userSvc.IssueLineLinkCode(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
