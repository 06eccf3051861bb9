package handler

import (
	"fmt"
	"strconv"

	appErrors "pillulu/internal/pkg/errors"

	"github.com/labstack/echo/v4"
)

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid %s", appErrors.ErrInvalidInput, name)
	}
	return uint(id), nil
}
