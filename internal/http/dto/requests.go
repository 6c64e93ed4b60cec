package dto

import (
	"time"

	"github.com/pathlab-audit/backend/internal/models"
)

type CreateAuditRequest struct {
	Action      string `json:"action"`
	Category    string `json:"category,omitempty"`
	Severity    string `json:"severity,omitempty"`
	RiskLevel   string `json:"risk_level,omitempty"`
	Description string `json:"description"`

	Target models.TargetInfo `json:"target"`

	Details    *models.ChangeDetails  `json:"details,omitempty"`
	Compliance *models.ComplianceInfo `json:"compliance,omitempty"`

	RiskFactors    []string `json:"risk_factors,omitempty"`
	RiskMitigation string   `json:"risk_mitigation,omitempty"`

	Outcome        string   `json:"outcome,omitempty"`
	IsSystemAction bool     `json:"is_system_action,omitempty"`
	IsAutomated    bool     `json:"is_automated,omitempty"`
	Tags           []string `json:"tags,omitempty"`

	// Timestamp of the event itself; defaults to now when omitted.
	Timestamp *time.Time `json:"timestamp,omitempty"`

	// RetentionPeriodDays overrides the deployment default for this event.
	RetentionPeriodDays int `json:"retention_period_days,omitempty"`
}

type ArchiveRequest struct {
	OlderThanDays int `json:"olderThanDays"`
}
