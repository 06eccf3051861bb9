package handler

import (
	"net/http"

	"pillulu/internal/application/dto"
	"pillulu/internal/application/service"
	"pillulu/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// LookupHandler serves medication search, weather and AI Q&A.
type LookupHandler struct {
	lookupSvc service.LookupService
	log       logger.Logger
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(lookupSvc service.LookupService, log logger.Logger) *LookupHandler {
	return &LookupHandler{lookupSvc: lookupSvc, log: log}
}

func (h *LookupHandler) SearchMeds(c echo.Context) error {
	results, err := h.lookupSvc.SearchMeds(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, results)
}

func (h *LookupHandler) Weather(c echo.Context) error {
	current, err := h.lookupSvc.Weather(c.Request().Context(), c.Param("region"))
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, current)
}

func (h *LookupHandler) Ask(c echo.Context) error {
	var req dto.AIAskRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	res, err := h.lookupSvc.Ask(c.Request().Context(), req)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
