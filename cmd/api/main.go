package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	_ "github.com/sjperalta/fintera-homes/docs" // Swagger docs
	"github.com/sjperalta/fintera-homes/internal/config"
	"github.com/sjperalta/fintera-homes/internal/database"
	"github.com/sjperalta/fintera-homes/internal/handlers"
	"github.com/sjperalta/fintera-homes/internal/jobs"
	"github.com/sjperalta/fintera-homes/internal/repository"
	"github.com/sjperalta/fintera-homes/internal/services"
	"github.com/sjperalta/fintera-homes/pkg/logger"
)

// @title Fintera Homes API
// @version 1.0
// @description Contract payment plans for residential lots: reservations, contracts, schedules and plan changes

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.EnableEmailNotifications && (cfg.ResendAPIKey == "" || cfg.FromEmail == "") {
		logger.Warn("Resend email disabled: RESEND_API_KEY or FROM_EMAIL not set")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.Environment)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.AutoMigrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	repos := repository.NewRepositories(db)

	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs := services.NewServices(repos, worker, cfg, db)

	scheduleJobs(worker, svcs, cfg)

	router := handlers.NewRouter(handlers.NewHandlers(svcs), cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	// Flag pending installments whose due date has passed
	worker.ScheduleEveryImmediate("overdue_marker", cfg.OverdueCheckInterval, func(ctx context.Context) error {
		marked, err := svcs.Contract.MarkOverdueInstallments(ctx, time.Now().UTC())
		if err != nil {
			return err
		}
		logger.Debug("[Job] Overdue check finished", slog.Int64("marked", marked))
		return nil
	})

	logger.Info("Scheduled recurring jobs", slog.Duration("overdue_interval", cfg.OverdueCheckInterval))
}
