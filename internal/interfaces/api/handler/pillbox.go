package handler

import (
	"net/http"

	"pillulu/internal/application/dto"
	"pillulu/internal/application/service"
	"pillulu/internal/interfaces/api/middleware"
	"pillulu/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PillboxHandler serves medications and schedules of the signed-in user.
type PillboxHandler struct {
	pillboxSvc service.PillboxService
	log        logger.Logger
}

// NewPillboxHandler creates a new PillboxHandler.
func NewPillboxHandler(pillboxSvc service.PillboxService, log logger.Logger) *PillboxHandler {
	return &PillboxHandler{pillboxSvc: pillboxSvc, log: log}
}

func (h *PillboxHandler) ListMeds(c echo.Context) error {
	meds, err := h.pillboxSvc.ListMeds(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, meds)
}

func (h *PillboxHandler) CreateMed(c echo.Context) error {
	var req dto.MedCreateRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	med, err := h.pillboxSvc.CreateMed(c.Request().Context(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, med)
}

func (h *PillboxHandler) GetMed(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrorJSON(c, err)
	}
	med, err := h.pillboxSvc.GetMed(c.Request().Context(), middleware.CurrentUser(c).ID, id)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, med)
}

func (h *PillboxHandler) UpdateMed(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrorJSON(c, err)
	}
	var req dto.MedUpdateRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	med, err := h.pillboxSvc.UpdateMed(c.Request().Context(), middleware.CurrentUser(c).ID, id, req)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, med)
}

func (h *PillboxHandler) DeleteMed(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrorJSON(c, err)
	}
	if err := h.pillboxSvc.DeleteMed(c.Request().Context(), middleware.CurrentUser(c).ID, id); err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

func (h *PillboxHandler) ListSchedules(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrorJSON(c, err)
	}
	schedules, err := h.pillboxSvc.ListSchedules(c.Request().Context(), middleware.CurrentUser(c).ID, id)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, schedules)
}

func (h *PillboxHandler) CreateSchedule(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrorJSON(c, err)
	}
	var req dto.ScheduleCreateRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	sch, err := h.pillboxSvc.CreateSchedule(c.Request().Context(), middleware.CurrentUser(c).ID, id, req)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, sch)
}

func (h *PillboxHandler) UpdateSchedule(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrorJSON(c, err)
	}
	var req dto.ScheduleUpdateRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	sch, err := h.pillboxSvc.UpdateSchedule(c.Request().Context(), middleware.CurrentUser(c).ID, id, req)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, sch)
}

func (h *PillboxHandler) DeleteSchedule(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrorJSON(c, err)
	}
	if err := h.pillboxSvc.DeleteSchedule(c.Request().Context(), middleware.CurrentUser(c).ID, id); err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}
