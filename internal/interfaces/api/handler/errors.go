package handler

import (
	"errors"
	"net/http"
	"strings"

	appErrors "pillulu/internal/pkg/errors"

	"github.com/labstack/echo/v4"
)

// DetailResponse is the error body of every endpoint.
type DetailResponse struct {
	Detail string `json:"detail"`
}

var statusBySentinel = []struct {
	err    error
	status int
}{
	{appErrors.ErrInvalidInput, http.StatusBadRequest},
	{appErrors.ErrEmailTaken, http.StatusBadRequest},
	{appErrors.ErrPasswordTooShort, http.StatusBadRequest},
	{appErrors.ErrLoginRequired, http.StatusUnauthorized},
	{appErrors.ErrInvalidToken, http.StatusUnauthorized},
	{appErrors.ErrUserNotFound, http.StatusUnauthorized},
	{appErrors.ErrInvalidCredentials, http.StatusUnauthorized},
	{appErrors.ErrForbidden, http.StatusForbidden},
	{appErrors.ErrMedicationNotFound, http.StatusNotFound},
	{appErrors.ErrScheduleNotFound, http.StatusNotFound},
	{appErrors.ErrUpstream, http.StatusBadGateway},
	{appErrors.ErrNotConfigured, http.StatusServiceUnavailable},
	{appErrors.ErrEvaluationLocked, http.StatusServiceUnavailable},
}

// StatusOf maps an application error to its HTTP status and client-facing detail.
func StatusOf(err error) (int, string) {
	for _, m := range statusBySentinel {
		if errors.Is(err, m.err) {
			return m.status, detailOf(err, m.err)
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// detailOf drops the sentinel prefix from "sentinel: detail" messages.
func detailOf(err, sentinel error) string {
	if sentinel == appErrors.ErrEvaluationLocked {
		return "Reminder evaluation already in progress"
	}
	if rest, ok := strings.CutPrefix(err.Error(), sentinel.Error()+": "); ok && rest != "" {
		return rest
	}
	return err.Error()
}

// ErrorJSON writes err as {"detail": ...}.
func ErrorJSON(c echo.Context, err error) error {
	status, detail := StatusOf(err)
	return c.JSON(status, DetailResponse{Detail: detail})
}

func bindError(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, DetailResponse{Detail: "Invalid request body"})
}
