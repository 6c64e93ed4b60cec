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

const (
	topActorsLimit      = 10
	elevatedEventsLimit = 100
	actorProfilesLimit  = 20
	recentFlaggedLimit  = 50
)

type AnalyticsService struct {
	analyticsRepo *repositories.AnalyticsRepo
	auditRepo     *repositories.AuditRepo
	cfg           *config.Config
	log           *zap.Logger
}

func NewAnalyticsService(analyticsRepo *repositories.AnalyticsRepo, auditRepo *repositories.AuditRepo, cfg *config.Config, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo, auditRepo: auditRepo, cfg: cfg, log: log}
}

// window resolves an optional date range against a default lookback in days.
// The range is [from, to).
func window(from, to *time.Time, defaultDays int) (time.Time, time.Time) {
	end := time.Now().UTC()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -defaultDays)
	if from != nil {
		start = *from
	}
	return start, end
}

// Stats computes the rollup for a tenant over the window (default last 30 days).
func (s *AnalyticsService) Stats(ctx context.Context, tenantID uuid.UUID, from, to *time.Time, granularity string) (*models.AuditStats, error) {
	start, end := window(from, to, s.cfg.StatsWindowDays)
	if !models.IsValidGranularity(granularity) {
		granularity = models.GranularityDaily
	}

	total, err := s.analyticsRepo.TotalCount(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}
	byAction, err := s.analyticsRepo.CountByAction(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.analyticsRepo.CountByCategory(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}
	byRisk, err := s.analyticsRepo.CountByRiskLevel(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}
	topActors, err := s.analyticsRepo.TopActors(ctx, tenantID, start, end, topActorsLimit)
	if err != nil {
		return nil, err
	}
	timeline, err := s.analyticsRepo.Timeline(ctx, tenantID, start, end, granularity)
	if err != nil {
		return nil, err
	}

	return &models.AuditStats{
		Period:      models.Period{From: start, To: end},
		Granularity: granularity,
		TotalLogs:   total,
		ByAction:    byAction,
		ByCategory:  byCategory,
		ByRiskLevel: byRisk,
		TopActors:   topActors,
		Timeline:    timeline,
	}, nil
}

// complianceRate is the share of compliance-flagged events without a
// violation, as a percentage. A window with no qualifying events is 100%:
// nothing happened that could violate the standard.
func complianceRate(total, violations int) float64 {
	if total <= 0 {
		return 100
	}
	return float64(total-violations) / float64(total) * 100
}

// ComplianceReport builds the posture report for one regulation over the window.
func (s *AnalyticsService) ComplianceReport(ctx context.Context, tenantID uuid.UUID, standard string, from, to *time.Time) (*models.ComplianceReport, error) {
	start, end := window(from, to, s.cfg.StatsWindowDays)

	total, violations, err := s.analyticsRepo.ComplianceCounts(ctx, tenantID, standard, start, end)
	if err != nil {
		return nil, err
	}
	violationTypes, err := s.analyticsRepo.ViolationTypes(ctx, tenantID, standard, start, end)
	if err != nil {
		return nil, err
	}
	dailyRates, err := s.analyticsRepo.DailyComplianceRates(ctx, tenantID, standard, start, end)
	if err != nil {
		return nil, err
	}
	recent, err := s.auditRepo.ListComplianceFlagged(ctx, tenantID, standard, start, end, recentFlaggedLimit)
	if err != nil {
		return nil, err
	}

	if violationTypes == nil {
		violationTypes = []models.ViolationType{}
	}

	return &models.ComplianceReport{
		Standard: standard,
		Period:   models.Period{From: start, To: end},
		Summary: models.ComplianceSummary{
			TotalComplianceLogs:   total,
			TotalViolations:       violations,
			ViolationTypeCount:    len(violationTypes),
			OverallComplianceRate: complianceRate(total, violations),
		},
		Violations:   violationTypes,
		DailyRates:   dailyRates,
		RecentEvents: recent,
	}, nil
}

// RiskAnalysis surfaces elevated-risk signal over a short window (default 7 days).
func (s *AnalyticsService) RiskAnalysis(ctx context.Context, tenantID uuid.UUID, from, to *time.Time) (*models.RiskAnalysis, error) {
	start, end := window(from, to, s.cfg.RiskWindowDays)

	trend, err := s.analyticsRepo.DailyRiskTrend(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}
	elevated, err := s.auditRepo.ListElevated(ctx, tenantID, start, end, elevatedEventsLimit)
	if err != nil {
		return nil, err
	}
	profiles, err := s.analyticsRepo.ActorRiskProfiles(ctx, tenantID, start, end, actorProfilesLimit)
	if err != nil {
		return nil, err
	}
	resources, err := s.analyticsRepo.ResourceRisks(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}

	return &models.RiskAnalysis{
		Period:         models.Period{From: start, To: end},
		DailyTrend:     trend,
		ElevatedEvents: elevated,
		ActorProfiles:  profiles,
		ResourceRisks:  resources,
	}, nil
}
