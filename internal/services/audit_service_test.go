package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pathlab-audit/backend/internal/config"
	"github.com/pathlab-audit/backend/internal/models"
	"go.uber.org/zap"
)

func testAuditService() *AuditService {
	return NewAuditService(nil, &config.Config{RetentionPeriodDays: 2555}, zap.NewNop())
}

func TestApplyDefaults(t *testing.T) {
	s := testAuditService()

	e := &models.AuditEvent{
		TenantID:    uuid.New(),
		Action:      "security_unauthorized_access",
		Actor:       &models.ActorInfo{ID: uuid.New()},
		Target:      models.TargetInfo{Type: models.TargetSystem},
		Description: "blocked access attempt",
		Tags:        []string{" Security ", "security", "PHI"},
	}
	s.applyDefaults(e)

	if e.Timestamp.IsZero() {
		t.Error("timestamp should default to now")
	}
	if e.Category != models.CategorySecurity {
		t.Errorf("category = %q, want derived %q", e.Category, models.CategorySecurity)
	}
	if e.Severity != models.RiskCritical {
		t.Errorf("severity = %q, want the action's intrinsic %q", e.Severity, models.RiskCritical)
	}
	if e.RiskLevel != models.RiskLow || e.Risk.Level != models.RiskLow {
		t.Errorf("risk level should default low, got %q/%q", e.RiskLevel, e.Risk.Level)
	}
	if e.Outcome != models.OutcomeSuccess {
		t.Errorf("outcome = %q, want success", e.Outcome)
	}
	if e.Retention.PeriodDays != 2555 {
		t.Errorf("retention period = %d, want 2555", e.Retention.PeriodDays)
	}
	if len(e.Tags) != 2 || e.Tags[0] != "security" || e.Tags[1] != "phi" {
		t.Errorf("tags not normalized: %v", e.Tags)
	}
}

func TestApplyDefaultsKeepsCallerValues(t *testing.T) {
	s := testAuditService()

	ts := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	e := &models.AuditEvent{
		TenantID:    uuid.New(),
		Action:      "user_login",
		Category:    models.CategoryUserManagement,
		Severity:    models.RiskHigh,
		Risk:        models.RiskInfo{Level: models.RiskCritical},
		Outcome:     models.OutcomeFailure,
		Actor:       &models.ActorInfo{ID: uuid.New()},
		Target:      models.TargetInfo{Type: models.TargetUser, ID: "u1"},
		Description: "suspicious login",
		Timestamp:   ts,
		Retention:   models.RetentionInfo{PeriodDays: 30},
	}
	s.applyDefaults(e)

	if !e.Timestamp.Equal(ts) {
		t.Error("explicit timestamp must not be overwritten")
	}
	if e.Severity != models.RiskHigh {
		t.Error("explicit severity must not be overwritten")
	}
	if e.RiskLevel != models.RiskCritical {
		t.Error("risk level should mirror risk.level")
	}
	if e.Outcome != models.OutcomeFailure {
		t.Error("explicit outcome must not be overwritten")
	}
	if e.Retention.PeriodDays != 30 {
		t.Error("explicit retention period must not be overwritten")
	}
}

func TestComplianceStatusDefaultsCompliant(t *testing.T) {
	s := testAuditService()
	e := &models.AuditEvent{
		Action:     "consent_recorded",
		Compliance: &models.ComplianceInfo{Regulation: "GDPR"},
	}
	s.applyDefaults(e)
	if e.Compliance.Status != models.ComplianceCompliant {
		t.Errorf("compliance status = %q, want compliant", e.Compliance.Status)
	}
}

// Record must reject invalid events before touching storage; the nil repo
// would panic otherwise.
func TestRecordRejectsInvalidWithoutWrite(t *testing.T) {
	s := testAuditService()

	e := &models.AuditEvent{
		TenantID:    uuid.New(),
		Action:      "not_a_real_action",
		Actor:       &models.ActorInfo{ID: uuid.New()},
		Target:      models.TargetInfo{Type: models.TargetSystem},
		Description: "whatever",
	}

	err := s.Record(context.Background(), e)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Field != "action" {
		t.Errorf("field = %q, want action", verr.Field)
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		total, page, limit int
		wantPages          int
	}{
		{0, 1, 20, 0},
		{1, 1, 20, 1},
		{20, 1, 20, 1},
		{21, 1, 20, 2},
		{100, 3, 25, 4},
	}
	for _, tt := range tests {
		p := paginate(tt.total, tt.page, tt.limit)
		if p.Pages != tt.wantPages {
			t.Errorf("paginate(%d, %d, %d).Pages = %d, want %d", tt.total, tt.page, tt.limit, p.Pages, tt.wantPages)
		}
		if p.Current != tt.page || p.Total != tt.total || p.Limit != tt.limit {
			t.Errorf("paginate(%d, %d, %d) = %+v", tt.total, tt.page, tt.limit, p)
		}
	}
}

func TestDeleteAfter(t *testing.T) {
	tests := []struct {
		ts   time.Time
		days int
		want time.Time
	}{
		{
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 30,
			time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC), 1,
			time.Date(2025, 6, 16, 8, 30, 0, 0, time.UTC),
		},
		{
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 2555,
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(2555 * 24 * time.Hour),
		},
	}
	for _, tt := range tests {
		if got := deleteAfter(tt.ts, tt.days); !got.Equal(tt.want) {
			t.Errorf("deleteAfter(%v, %d) = %v, want %v", tt.ts, tt.days, got, tt.want)
		}
	}
}
