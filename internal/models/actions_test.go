package models

import "testing"

func TestEveryActionHasValidCategory(t *testing.T) {
	for action, category := range ActionCategories {
		if !IsValidCategory(category) {
			t.Errorf("action %q maps to unknown category %q", action, category)
		}
		if CategoryForAction(action) != category {
			t.Errorf("CategoryForAction(%q) = %q, want %q", action, CategoryForAction(action), category)
		}
	}
}

func TestActionSeveritiesAreKnownActions(t *testing.T) {
	for action, severity := range ActionSeverities {
		if !IsValidAction(action) {
			t.Errorf("severity override for unknown action %q", action)
		}
		if !IsValidRiskLevel(severity) {
			t.Errorf("action %q has invalid severity %q", action, severity)
		}
	}
}

func TestSeverityForAction(t *testing.T) {
	tests := []struct {
		action string
		want   string
	}{
		{"security_unauthorized_access", RiskCritical},
		{"patient_deleted", RiskHigh},
		{"user_login", RiskLow},
		{"sample_collected", RiskMedium}, // unlisted actions default medium
		{"no_such_action", RiskMedium},
	}
	for _, tt := range tests {
		if got := SeverityForAction(tt.action); got != tt.want {
			t.Errorf("SeverityForAction(%q) = %q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestSpecificActionsExist(t *testing.T) {
	for _, action := range []string{
		"user_login", "patient_created", "report_approved", "security_unauthorized_access",
	} {
		if !IsValidAction(action) {
			t.Errorf("expected %q in the action set", action)
		}
	}
}
