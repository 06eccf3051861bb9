package middleware

import (
	"errors"
	"net/http"
	"strings"

	"pillulu/internal/application/service"
	"pillulu/internal/domain/entity"
	appErrors "pillulu/internal/pkg/errors"
	"pillulu/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

const userKey = "user"

// BearerToken extracts the token of an "Authorization: Bearer ..." header.
func BearerToken(c echo.Context) string {
	scheme, token, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireUser rejects requests without a valid token and stores the
// authenticated user in the context.
func RequireUser(authSvc service.AuthService, log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"detail": appErrors.ErrLoginRequired.Error()})
			}
			user, err := authSvc.Authenticate(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, appErrors.ErrInvalidToken) || errors.Is(err, appErrors.ErrUserNotFound) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"detail": err.Error()})
				}
				log.Error("Failed to authenticate request", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "Internal server error"})
			}
			c.Set(userKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by RequireUser, or nil.
func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(userKey).(*entity.User)
	return user
}
