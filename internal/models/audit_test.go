package models

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func validEvent() *AuditEvent {
	return &AuditEvent{
		TenantID:    uuid.New(),
		Action:      "patient_created",
		Category:    CategoryPatientCare,
		Severity:    RiskMedium,
		RiskLevel:   RiskLow,
		Actor:       &ActorInfo{ID: uuid.New(), Name: "Dr. Rivera"},
		Target:      TargetInfo{Type: TargetPatient, ID: "pat-001"},
		Description: "created patient record",
		Risk:        RiskInfo{Level: RiskLow},
	}
}

func TestValidateAuditEvent(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(e *AuditEvent)
		wantField  string
		wantReason string
	}{
		{"valid", func(e *AuditEvent) {}, "", ""},
		{"unknown action", func(e *AuditEvent) { e.Action = "not_a_real_action" }, "action", ReasonInvalidEnum},
		{"unknown category", func(e *AuditEvent) { e.Category = "astrology" }, "category", ReasonInvalidEnum},
		{"bad severity", func(e *AuditEvent) { e.Severity = "severe" }, "severity", ReasonInvalidEnum},
		{"bad risk level", func(e *AuditEvent) { e.RiskLevel = "extreme" }, "risk_level", ReasonInvalidEnum},
		{"bad target type", func(e *AuditEvent) { e.Target.Type = "starship" }, "target.type", ReasonInvalidEnum},
		{"missing tenant", func(e *AuditEvent) { e.TenantID = uuid.Nil }, "tenant_id", ReasonMissingField},
		{"missing target id", func(e *AuditEvent) { e.Target.ID = "" }, "target.id", ReasonMissingField},
		{
			"system target needs no id",
			func(e *AuditEvent) { e.Target = TargetInfo{Type: TargetSystem} },
			"", "",
		},
		{
			"file target needs no id",
			func(e *AuditEvent) { e.Target = TargetInfo{Type: TargetFile} },
			"", "",
		},
		{
			"database target needs no id",
			func(e *AuditEvent) { e.Target = TargetInfo{Type: TargetDatabase} },
			"", "",
		},
		{"missing actor", func(e *AuditEvent) { e.Actor = nil }, "actor", ReasonMissingField},
		{
			"system action needs no actor",
			func(e *AuditEvent) { e.Actor = nil; e.IsSystemAction = true },
			"", "",
		},
		{"missing description", func(e *AuditEvent) { e.Description = "" }, "description", ReasonMissingField},
		{
			"oversized description",
			func(e *AuditEvent) { e.Description = strings.Repeat("x", MaxDescriptionLength+1) },
			"description", ReasonTooLong,
		},
		{
			"description at limit",
			func(e *AuditEvent) { e.Description = strings.Repeat("x", MaxDescriptionLength) },
			"", "",
		},
		{
			"multibyte description counts characters not bytes",
			func(e *AuditEvent) { e.Description = strings.Repeat("ы", MaxDescriptionLength) },
			"", "",
		},
		{
			"oversized multibyte description",
			func(e *AuditEvent) { e.Description = strings.Repeat("ы", MaxDescriptionLength+1) },
			"description", ReasonTooLong,
		},
		{
			"bad compliance status",
			func(e *AuditEvent) { e.Compliance = &ComplianceInfo{Regulation: "HIPAA", Status: "maybe"} },
			"compliance.status", ReasonInvalidEnum,
		},
		{
			"valid compliance",
			func(e *AuditEvent) { e.Compliance = &ComplianceInfo{Regulation: "HIPAA", Status: CompliancePendingReview} },
			"", "",
		},
		{"bad outcome", func(e *AuditEvent) { e.Outcome = "partial" }, "outcome", ReasonInvalidEnum},
		{
			"negative retention",
			func(e *AuditEvent) { e.Retention.PeriodDays = -1 },
			"retention.period_days", ReasonInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEvent()
			tt.mutate(e)
			err := ValidateAuditEvent(e)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid event, got %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
			if verr.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", verr.Reason, tt.wantReason)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"empty", []string{}, nil},
		{"lowercases and trims", []string{"  PHI ", "Urgent"}, []string{"phi", "urgent"}},
		{"dedupes keeping order", []string{"phi", "PHI", "audit", "phi"}, []string{"phi", "audit"}},
		{"drops blanks", []string{"", "   ", "ok"}, []string{"ok"}},
		{"all blank", []string{"", " "}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompareRiskLevels(t *testing.T) {
	ordered := []string{RiskLow, RiskMedium, RiskHigh, RiskCritical}
	for i, lower := range ordered {
		for _, higher := range ordered[i+1:] {
			if CompareRiskLevels(lower, higher) >= 0 {
				t.Errorf("expected %s < %s", lower, higher)
			}
			if CompareRiskLevels(higher, lower) <= 0 {
				t.Errorf("expected %s > %s", higher, lower)
			}
		}
		if CompareRiskLevels(lower, lower) != 0 {
			t.Errorf("expected %s == %s", lower, lower)
		}
	}
}

func TestTargetRequiresID(t *testing.T) {
	idLess := map[string]bool{TargetSystem: true, TargetFile: true, TargetDatabase: true}
	for tt := range validTargetTypes {
		if TargetRequiresID(tt) == idLess[tt] {
			t.Errorf("TargetRequiresID(%q) = %v, want %v", tt, TargetRequiresID(tt), !idLess[tt])
		}
	}
}
