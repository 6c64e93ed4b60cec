package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pathlab-audit/backend/internal/events"
	"github.com/pathlab-audit/backend/internal/repositories"
	"go.uber.org/zap"
)

// RetentionStream is the redis channel sweep results are published on.
const RetentionStream = "audit:retention"

// RetentionService runs the archival and purge sweeps. Both are safe to run
// concurrently from multiple instances: archival is an idempotent flag flip
// and purge is a delete by deadline.
type RetentionService struct {
	auditRepo *repositories.AuditRepo
	publisher events.Publisher
	log       *zap.Logger
}

func NewRetentionService(auditRepo *repositories.AuditRepo, publisher events.Publisher, log *zap.Logger) *RetentionService {
	return &RetentionService{auditRepo: auditRepo, publisher: publisher, log: log}
}

// ArchiveOlderThan flips retention.archived on everything created before
// cutoff and reports how many rows changed this run. The on-demand API path
// passes the caller's tenant; the scheduled worker sweeps all tenants with
// uuid.Nil.
func (s *RetentionService) ArchiveOlderThan(ctx context.Context, tenantID uuid.UUID, cutoff time.Time) (int64, error) {
	archived, err := s.auditRepo.ArchiveOlderThan(ctx, tenantID, cutoff)
	if err != nil {
		return 0, err
	}

	s.log.Info("archive sweep completed",
		zap.Int64("archived", archived),
		zap.Time("cutoff", cutoff),
		zap.String("tenant_id", tenantID.String()))
	s.publish(ctx, events.EventRetentionArchived, map[string]any{
		"archived":  archived,
		"cutoff":    cutoff.Format(time.RFC3339),
		"tenant_id": tenantID.String(),
	})
	return archived, nil
}

// PurgeExpired permanently deletes events whose delete_after has passed.
func (s *RetentionService) PurgeExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	purged, err := s.auditRepo.PurgeExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	s.log.Info("purge sweep completed", zap.Int64("purged", purged))
	s.publish(ctx, events.EventRetentionPurged, map[string]any{
		"purged": purged,
		"as_of":  now.Format(time.RFC3339),
	})
	return purged, nil
}

func (s *RetentionService) publish(ctx context.Context, eventType string, payload map[string]any) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, RetentionStream, events.Event{Type: eventType, Payload: payload})
	if err != nil {
		s.log.Warn("failed to publish retention event", zap.String("type", eventType), zap.Error(err))
	}
}
