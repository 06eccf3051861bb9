package router

import (
	"fmt"
	"net/http"

	"pillulu/internal/application/service"
	"pillulu/internal/interfaces/api/handler"
	apiMiddleware "pillulu/internal/interfaces/api/middleware"
	"pillulu/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the dependencies for the router.
type Config struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	PillboxHandler      *handler.PillboxHandler
	NotificationHandler *handler.NotificationHandler
	CronHandler         *handler.CronHandler
	LookupHandler       *handler.LookupHandler
	LineHandler         *handler.LineHandler // nil when LINE is not configured
	AuthService         service.AuthService
	RatePerSec          float64
	Logger              logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestID())
	// Use custom logger that integrates with our logger interface
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogHost:      true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(apiMiddleware.Metrics())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, handler.CronSecretHeader, "X-Line-Signature"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	e.GET("/health", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// LINE Webhook Endpoint
	// Note: LINE Platform requires POST for webhook
	if cfg.LineHandler != nil {
		e.POST("/callback", cfg.LineHandler.HandleWebhook)
	}

	api := e.Group("/api", apiMiddleware.RateLimit(cfg.RatePerSec))
	requireUser := apiMiddleware.RequireUser(cfg.AuthService, cfg.Logger)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", cfg.AuthHandler.Register)
	authGroup.POST("/login", cfg.AuthHandler.Login)
	authGroup.GET("/me", cfg.AuthHandler.Me)

	user := api.Group("/user", requireUser)
	user.GET("/profile", cfg.UserHandler.GetProfile)
	user.PUT("/profile", cfg.UserHandler.UpdateProfile)
	user.GET("/email", cfg.UserHandler.GetEmail)
	user.PUT("/email", cfg.UserHandler.UpdateEmail)
	user.POST("/line/link_code", cfg.UserHandler.IssueLineLinkCode)

	pillbox := api.Group("/pillbox", requireUser)
	pillbox.GET("/meds", cfg.PillboxHandler.ListMeds)
	pillbox.POST("/meds", cfg.PillboxHandler.CreateMed)
	pillbox.GET("/meds/:id", cfg.PillboxHandler.GetMed)
	pillbox.PUT("/meds/:id", cfg.PillboxHandler.UpdateMed)
	pillbox.DELETE("/meds/:id", cfg.PillboxHandler.DeleteMed)
	pillbox.GET("/meds/:id/schedules", cfg.PillboxHandler.ListSchedules)
	pillbox.POST("/meds/:id/schedules", cfg.PillboxHandler.CreateSchedule)
	api.PUT("/schedules/:id", cfg.PillboxHandler.UpdateSchedule, requireUser)
	api.DELETE("/schedules/:id", cfg.PillboxHandler.DeleteSchedule, requireUser)

	api.GET("/notifications", cfg.NotificationHandler.List)
	api.PUT("/notifications/read-all", cfg.NotificationHandler.MarkAllRead)
	api.PUT("/notifications/:id/read", cfg.NotificationHandler.MarkRead)

	cron := api.Group("/cron")
	cron.POST("/send_reminders", cfg.CronHandler.SendReminders)
	cron.POST("/decrement_stock", cfg.CronHandler.DecrementStock)
	cron.GET("/debug_reminders", cfg.CronHandler.DebugReminders)

	api.GET("/med/search", cfg.LookupHandler.SearchMeds)
	api.GET("/weather/:region", cfg.LookupHandler.Weather, requireUser)
	api.POST("/ai/ask", cfg.LookupHandler.Ask)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
