package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// rateLimitIdleExpiry drops a client's limiter after this long without requests.
const rateLimitIdleExpiry = 3 * time.Minute

// RateLimit allows perSec requests per second per client IP, with a burst of twice that.
func RateLimit(perSec float64) echo.MiddlewareFunc {
	burst := int(perSec * 2)
	if burst < 1 {
		burst = 1
	}
	store := echoMiddleware.NewRateLimiterMemoryStoreWithConfig(echoMiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSec),
		Burst:     burst,
		ExpiresIn: rateLimitIdleExpiry,
	})
	return echoMiddleware.RateLimiterWithConfig(echoMiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, map[string]string{"detail": "Unable to identify client"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"detail": "Too many requests, slow down"})
		},
	})
}
