package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"pillulu/internal/application/dto"
	"pillulu/internal/application/service"
	appErrors "pillulu/internal/pkg/errors"
	"pillulu/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NotificationHandler serves the in-app notification feed.
type NotificationHandler struct {
	notificationSvc service.NotificationService
	log             logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationSvc service.NotificationService, log logger.Logger) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc, log: log}
}

// List accepts ?limit=, default 50.
func (h *NotificationHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return ErrorJSON(c, fmt.Errorf("%w: limit must be a non-negative integer", appErrors.ErrInvalidInput))
		}
		limit = n
	}
	list, err := h.notificationSvc.List(c.Request().Context(), limit)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrorJSON(c, err)
	}
	if err := h.notificationSvc.MarkRead(c.Request().Context(), id); err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.notificationSvc.MarkAllRead(c.Request().Context()); err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}
