package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pathlab-audit/backend/internal/config"
	"github.com/pathlab-audit/backend/internal/models"
	"github.com/pathlab-audit/backend/internal/repositories"
	"go.uber.org/zap"
)

type AuditService struct {
	auditRepo *repositories.AuditRepo
	cfg       *config.Config
	log       *zap.Logger
}

func NewAuditService(auditRepo *repositories.AuditRepo, cfg *config.Config, log *zap.Logger) *AuditService {
	return &AuditService{auditRepo: auditRepo, cfg: cfg, log: log}
}

// Record validates one event, fills defaults, computes retention and persists
// it. No write happens on validation failure. Retries after a storage error
// are not idempotent: a duplicate submission becomes a second event with its
// own log id.
func (s *AuditService) Record(ctx context.Context, e *models.AuditEvent) error {
	s.applyDefaults(e)

	if err := models.ValidateAuditEvent(e); err != nil {
		return err
	}

	e.Retention.DeleteAfter = deleteAfter(e.Timestamp, e.Retention.PeriodDays)
	e.Retention.Archived = false
	e.Retention.ArchivedAt = nil

	if err := s.auditRepo.Create(ctx, e); err != nil {
		return err
	}

	s.log.Debug("audit event recorded",
		zap.String("log_id", e.LogID),
		zap.String("tenant_id", e.TenantID.String()),
		zap.String("action", e.Action),
	)
	return nil
}

// deleteAfter is the retention deadline: event time plus the retention period.
func deleteAfter(ts time.Time, periodDays int) time.Time {
	return ts.Add(time.Duration(periodDays) * 24 * time.Hour)
}

func (s *AuditService) applyDefaults(e *models.AuditEvent) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.Category == "" {
		e.Category = models.CategoryForAction(e.Action)
	}
	// Severity is intrinsic to the action type; risk level is assigned per
	// occurrence by the caller and defaults low.
	if e.Severity == "" {
		e.Severity = models.SeverityForAction(e.Action)
	}
	if e.Risk.Level == "" {
		e.Risk.Level = e.RiskLevel
	}
	if e.Risk.Level == "" {
		e.Risk.Level = models.RiskLow
	}
	e.RiskLevel = e.Risk.Level
	if e.Outcome == "" {
		e.Outcome = models.OutcomeSuccess
	}
	if e.Compliance != nil && e.Compliance.Status == "" {
		e.Compliance.Status = models.ComplianceCompliant
	}
	if e.Retention.PeriodDays == 0 {
		e.Retention.PeriodDays = s.cfg.RetentionPeriodDays
	}
	e.Tags = models.NormalizeTags(e.Tags)
}

// List answers a filtered, paginated query. The filter must already carry the
// tenant scope resolved by the caller.
func (s *AuditService) List(ctx context.Context, f repositories.AuditFilter) ([]models.AuditEvent, models.Pagination, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	f.Limit = limit
	if f.Page < 1 {
		f.Page = 1
	}

	events, total, err := s.auditRepo.List(ctx, f)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return events, paginate(total, f.Page, limit), nil
}

func paginate(total, page, limit int) models.Pagination {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return models.Pagination{Current: page, Pages: pages, Total: total, Limit: limit}
}

func (s *AuditService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.AuditEvent, error) {
	return s.auditRepo.GetByID(ctx, tenantID, id)
}
