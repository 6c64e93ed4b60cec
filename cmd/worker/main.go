package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pathlab-audit/backend/internal/config"
	"github.com/pathlab-audit/backend/internal/db"
	"github.com/pathlab-audit/backend/internal/events"
	"github.com/pathlab-audit/backend/internal/repositories"
	"github.com/pathlab-audit/backend/internal/services"
	"go.uber.org/zap"
)

// The retention worker runs the archival and purge sweeps on independent
// tickers. Both sweeps are idempotent, so multiple worker instances are safe.
func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	auditRepo := repositories.NewAuditRepo(pool)
	publisher := events.NewRedisPublisher(rdb, log)
	retentionService := services.NewRetentionService(auditRepo, publisher, log)

	log.Info("retention worker started",
		zap.Int("archive_after_days", cfg.ArchiveAfterDays),
		zap.Duration("archive_interval", cfg.ArchiveSweepInterval),
		zap.Duration("purge_interval", cfg.PurgeSweepInterval),
	)

	archiveTicker := time.NewTicker(cfg.ArchiveSweepInterval)
	purgeTicker := time.NewTicker(cfg.PurgeSweepInterval)
	defer archiveTicker.Stop()
	defer purgeTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-archiveTicker.C:
			runArchiveSweep(ctx, retentionService, cfg, log)
		case <-purgeTicker.C:
			runPurgeSweep(ctx, retentionService, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

func runArchiveSweep(ctx context.Context, svc *services.RetentionService, cfg *config.Config, log *zap.Logger) {
	cutoff := time.Now().UTC().AddDate(0, 0, -cfg.ArchiveAfterDays)
	if _, err := svc.ArchiveOlderThan(ctx, uuid.Nil, cutoff); err != nil {
		log.Error("archive sweep failed", zap.Error(err))
	}
}

func runPurgeSweep(ctx context.Context, svc *services.RetentionService, log *zap.Logger) {
	if _, err := svc.PurgeExpired(ctx); err != nil {
		log.Error("purge sweep failed", zap.Error(err))
	}
}
