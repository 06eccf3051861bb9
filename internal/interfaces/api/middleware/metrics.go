package middleware

import (
	"fmt"
	"time"

	"pillulu/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics records request counts and latencies per route template.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			duration := time.Since(start).Seconds()

			endpoint := c.Path()
			if endpoint == "" {
				endpoint = "unmatched"
			}
			method := c.Request().Method
			status := fmt.Sprintf("%d", c.Response().Status)

			metrics.HttpRequestsTotal.WithLabelValues(endpoint, status, method).Inc()
			metrics.HttpRequestDuration.WithLabelValues(endpoint, method).Observe(duration)
			return nil
		}
	}
}
