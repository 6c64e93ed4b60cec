package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/pathlab-audit/backend/internal/config"
	"github.com/pathlab-audit/backend/internal/db"
	"github.com/pathlab-audit/backend/internal/events"
	apphttp "github.com/pathlab-audit/backend/internal/http"
	"github.com/pathlab-audit/backend/internal/http/handlers"
	"github.com/pathlab-audit/backend/internal/repositories"
	"github.com/pathlab-audit/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	auditRepo := repositories.NewAuditRepo(pool)
	analyticsRepo := repositories.NewAnalyticsRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)

	// Services
	auditService := services.NewAuditService(auditRepo, cfg, log)
	analyticsService := services.NewAnalyticsService(analyticsRepo, auditRepo, cfg, log)
	retentionService := services.NewRetentionService(auditRepo, publisher, log)
	exportService := services.NewExportService(auditRepo, cfg, log)

	// Handlers
	auditHandler := handlers.NewAuditHandler(auditService, log)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, log)
	retentionHandler := handlers.NewRetentionHandler(retentionService, log)
	exportHandler := handlers.NewExportHandler(exportService, log)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, auditHandler, analyticsHandler, retentionHandler, exportHandler)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
