package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Application Layer
	appService "pillulu/internal/application/service"

	// Infrastructure Layer
	"pillulu/internal/infrastructure/assistant"
	"pillulu/internal/infrastructure/database/sqlite"
	"pillulu/internal/infrastructure/lock"
	lineClient "pillulu/internal/infrastructure/line"
	"pillulu/internal/infrastructure/mail"
	"pillulu/internal/infrastructure/openfda"
	"pillulu/internal/infrastructure/openmeteo"
	"pillulu/internal/infrastructure/scheduler"

	// Interfaces Layer
	"pillulu/internal/interfaces/api/handler"
	"pillulu/internal/interfaces/api/router"

	// Packages
	"pillulu/internal/pkg/auth"
	"pillulu/internal/pkg/config"
	appLogger "pillulu/internal/pkg/logger"
	"pillulu/internal/pkg/metrics"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
)

const deliveryWorkers = 2

func gracefulShutdown(
	apiServer *http.Server,
	schedulerSvc appService.SchedulerService,
	deliverySvc appService.DeliveryService,
	appLog appLogger.Logger,
	done chan bool,
) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	appLog.Info("Shutting down gracefully, press Ctrl+C again to force")

	// Stop the scheduler first; it waits for a running evaluation
	if schedulerSvc != nil {
		appLog.Info("Stopping scheduler...")
		schedulerSvc.Stop()
		appLog.Info("Scheduler stopped.")
	}

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", err)
	}

	// Nothing enqueues once the server and the scheduler are down
	appLog.Info("Draining delivery queue...")
	deliverySvc.Stop()

	// Close database connection
	appLog.Info("Closing database connection...")
	if err := sqlite.CloseDB(); err != nil {
		appLog.Error("Error closing database", err)
	} else {
		appLog.Info("Database connection closed.")
	}

	appLog.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// --- Initialization ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	appLog, err := appLogger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync(appLog)
	appLog.Info("Logger initialized.")
	metrics.Init()

	if cfg.CronSecret == "" {
		appLog.Warn("CRON_SECRET not set, /api/cron endpoints will reject every call")
	}

	// --- Infrastructure ---
	db, err := sqlite.NewDB(context.Background(), cfg.DatabasePath, cfg.LogLevel, appLog)
	if err != nil {
		appLog.Error("Failed to open database", err)
		os.Exit(1)
	}
	userRepo := sqlite.NewUserRepository(db)
	medRepo := sqlite.NewMedicationRepository(db)
	scheduleRepo := sqlite.NewScheduleRepository(db)
	notificationRepo := sqlite.NewNotificationRepository(db)
	transactor := sqlite.NewTransactor(db)
	appLog.Info("Database and repositories initialized.")

	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.RedisURL != "" {
		redisClient, err := lock.NewRedisClient(cfg.RedisURL)
		if err != nil {
			appLog.Error("Invalid REDIS_URL", err)
			os.Exit(1)
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			appLog.Error("Failed to connect to Redis", err)
			os.Exit(1)
		}
		locker = lock.NewRedisLocker(redisClient, lock.DefaultKey, lock.DefaultTTL, appLog)
		appLog.Info("Using Redis evaluation lock.")
	}

	// --- Delivery channels ---
	var channels []appService.Channel
	if cfg.EmailEnabled() {
		mailer := mail.NewSendGridMailer(cfg.SendGridAPIKey, cfg.FromEmail, "", appLog)
		channels = append(channels, appService.NewEmailChannel(mailer, cfg.AppBaseURL))
		appLog.Info("Email delivery enabled.")
	} else {
		appLog.Warn("SENDGRID_API_KEY or FROM_EMAIL not set, email delivery disabled")
	}
	var line *lineClient.Client
	if cfg.LineEnabled() {
		line, err = lineClient.NewClient(cfg.LineChannelSecret, cfg.LineChannelToken, appLog)
		if err != nil {
			appLog.Error("Failed to create LINE client", err)
			os.Exit(1)
		}
		channels = append(channels, appService.NewLineChannel(line))
	} else {
		appLog.Warn("CHANNEL_SECRET or CHANNEL_ACCESS_TOKEN not set, LINE delivery disabled")
	}

	// --- Application Services ---
	tokens := auth.NewTokens(cfg.JWTSecret)
	deliverySvc := appService.NewDeliveryService(channels, userRepo, cfg.DeliveryRatePerSec, appLog)
	deliverySvc.Start(deliveryWorkers)
	reminderSvc := appService.NewReminderService(transactor, scheduleRepo, medRepo, notificationRepo, locker, deliverySvc, appLog)
	authSvc := appService.NewAuthService(userRepo, tokens, appLog)
	userSvc := appService.NewUserService(userRepo, appLog)
	pillboxSvc := appService.NewPillboxService(medRepo, scheduleRepo, appLog)
	notificationSvc := appService.NewNotificationService(notificationRepo, appLog)

	var asker appService.Asker
	if cfg.OpenAIAPIKey != "" {
		asker = assistant.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, "")
	}
	lookupSvc := appService.NewLookupService(openfda.NewClient(""), openmeteo.NewClient(""), asker, appLog)
	appLog.Info("Application services initialized.")

	// --- Scheduler ---
	var schedulerSvc appService.SchedulerService
	if cfg.SchedulerEnabled {
		schedulerSvc = appService.NewSchedulerService(scheduler.NewScheduler(appLog), reminderSvc, appLog)
		if err := schedulerSvc.Start(); err != nil {
			appLog.Error("Failed to start reminder scheduler", err)
			os.Exit(1)
		}
		appLog.Info("Reminder scheduler started.")
	} else {
		appLog.Info("SCHEDULER_ENABLED=false, relying on external cron calls.")
	}

	// --- API Handlers ---
	var lineHandler *handler.LineHandler
	if line != nil {
		lineHandler = handler.NewLineHandler(line, userSvc, appLog)
	}
	appLog.Info("API handlers initialized.")

	// --- Router ---
	routerCfg := &router.Config{
		AuthHandler:         handler.NewAuthHandler(authSvc, appLog),
		UserHandler:         handler.NewUserHandler(userSvc, appLog),
		PillboxHandler:      handler.NewPillboxHandler(pillboxSvc, appLog),
		NotificationHandler: handler.NewNotificationHandler(notificationSvc, appLog),
		CronHandler:         handler.NewCronHandler(reminderSvc, cfg.CronSecret, appLog),
		LookupHandler:       handler.NewLookupHandler(lookupSvc, appLog),
		LineHandler:         lineHandler,
		AuthService:         authSvc,
		RatePerSec:          cfg.HTTPRatePerSec,
		Logger:              appLog,
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // AI answers and evaluations can be slow
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, schedulerSvc, deliverySvc, appLog, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Port))
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
}
