package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pathlab-audit/backend/internal/config"
	"github.com/pathlab-audit/backend/internal/http/handlers"
	"github.com/pathlab-audit/backend/internal/middleware"
	"github.com/pathlab-audit/backend/internal/rbac"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	auditHandler *handlers.AuditHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	retentionHandler *handlers.RetentionHandler,
	exportHandler *handlers.ExportHandler,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Meta (public enum discovery)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/actions", metaHandler.GetActions)
	api.Get("/meta/categories", metaHandler.GetCategories)
	api.Get("/meta/risk-levels", metaHandler.GetRiskLevels)

	// Audit routes all require an authenticated, tenant-scoped actor.
	audit := api.Group("/audit", middleware.AuthMiddleware(cfg, log))

	audit.Post("/", middleware.RequirePermission(rbac.PermRecordAudit), auditHandler.Create)
	audit.Get("/", middleware.RequirePermission(rbac.PermViewAuditLogs), auditHandler.List)
	audit.Get("/stats", middleware.RequirePermission(rbac.PermViewStats), analyticsHandler.Stats)
	audit.Get("/compliance-report", middleware.RequirePermission(rbac.PermViewCompliance), analyticsHandler.ComplianceReport)
	audit.Get("/risk-analysis", middleware.RequirePermission(rbac.PermViewRisk), analyticsHandler.RiskAnalysis)
	audit.Get("/export", middleware.RequirePermission(rbac.PermExportAudit), exportHandler.Export)
	audit.Post("/archive", middleware.RequirePermission(rbac.PermManageRetention), retentionHandler.Archive)
	audit.Get("/:id", middleware.RequirePermission(rbac.PermViewAuditLogs), auditHandler.GetByID)
}
