package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Default retention: 7 years, per lab compliance policy.
const DefaultRetentionDays = 2555

const MaxDescriptionLength = 1000

// Risk levels / severities, ordered low < medium < high < critical.
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

var riskOrder = map[string]int{
	RiskLow:      0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskCritical: 3,
}

func IsValidRiskLevel(level string) bool {
	_, ok := riskOrder[level]
	return ok
}

// CompareRiskLevels returns <0 if a is lower than b, 0 if equal, >0 if higher.
// Unknown levels compare as low.
func CompareRiskLevels(a, b string) int {
	return riskOrder[a] - riskOrder[b]
}

// Risk score weights used by the risk analyzer. Policy constants, not invariants.
const (
	RiskWeightCritical = 10
	RiskWeightHigh     = 5
	RiskWeightMedium   = 2
	RiskWeightLow      = 1

	ResourceWeightRiskEvent    = 5
	ResourceWeightFailedAccess = 2
)

// Outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Compliance statuses
const (
	ComplianceCompliant     = "compliant"
	ComplianceNonCompliant  = "non_compliant"
	CompliancePendingReview = "pending_review"
)

func IsValidComplianceStatus(s string) bool {
	return s == ComplianceCompliant || s == ComplianceNonCompliant || s == CompliancePendingReview
}

// Target types. The id-less types describe infrastructure rather than records.
const (
	TargetUser        = "user"
	TargetPatient     = "patient"
	TargetSample      = "sample"
	TargetReport      = "report"
	TargetInvoice     = "invoice"
	TargetInventory   = "inventory"
	TargetEquipment   = "equipment"
	TargetAppointment = "appointment"
	TargetLab         = "lab"
	TargetSystem      = "system"
	TargetFile        = "file"
	TargetDatabase    = "database"
)

var validTargetTypes = map[string]bool{
	TargetUser: true, TargetPatient: true, TargetSample: true, TargetReport: true,
	TargetInvoice: true, TargetInventory: true, TargetEquipment: true,
	TargetAppointment: true, TargetLab: true, TargetSystem: true,
	TargetFile: true, TargetDatabase: true,
}

func IsValidTargetType(t string) bool {
	return validTargetTypes[t]
}

// TargetRequiresID reports whether events against this target type must carry a target id.
func TargetRequiresID(t string) bool {
	switch t {
	case TargetSystem, TargetFile, TargetDatabase:
		return false
	default:
		return true
	}
}

type ActorInfo struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

type TargetInfo struct {
	Type       string `json:"type"`
	ID         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	Identifier string `json:"identifier,omitempty"`
}

type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value,omitempty"`
	NewValue any    `json:"new_value,omitempty"`
}

// ChangeDetails is deliberately schema-less passthrough data from the domain modules.
type ChangeDetails struct {
	Before   map[string]any `json:"before,omitempty"`
	After    map[string]any `json:"after,omitempty"`
	Changes  []FieldChange  `json:"changes,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type ComplianceInfo struct {
	Regulation  string `json:"regulation,omitempty"`
	Requirement string `json:"requirement,omitempty"`
	Status      string `json:"status,omitempty"`
}

type RiskInfo struct {
	Level      string   `json:"level"`
	Factors    []string `json:"factors,omitempty"`
	Mitigation string   `json:"mitigation,omitempty"`
}

type RetentionInfo struct {
	PeriodDays  int        `json:"period_days"`
	DeleteAfter time.Time  `json:"delete_after"`
	Archived    bool       `json:"archived"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
}

// AuditEvent is one immutable compliance log record. Only the retention
// archived/archived_at fields change after creation.
type AuditEvent struct {
	ID             uuid.UUID       `json:"id"`
	LogID          string          `json:"log_id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	Action         string          `json:"action"`
	Category       string          `json:"category"`
	Severity       string          `json:"severity"`
	RiskLevel      string          `json:"risk_level"`
	Actor          *ActorInfo      `json:"actor,omitempty"`
	Target         TargetInfo      `json:"target"`
	Description    string          `json:"description"`
	Details        *ChangeDetails  `json:"details,omitempty"`
	Compliance     *ComplianceInfo `json:"compliance,omitempty"`
	Risk           RiskInfo        `json:"risk"`
	Outcome        string          `json:"outcome"`
	IsSystemAction bool            `json:"is_system_action"`
	IsAutomated    bool            `json:"is_automated"`
	Tags           []string        `json:"tags,omitempty"`
	Retention      RetentionInfo   `json:"retention"`
	Timestamp      time.Time       `json:"timestamp"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NormalizeTags trims, lowercases and de-duplicates tags, preserving first-seen order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ValidateAuditEvent enforces the structural invariants of an event before any write.
func ValidateAuditEvent(e *AuditEvent) error {
	if e.TenantID == uuid.Nil {
		return missingField("tenant_id")
	}
	if !IsValidAction(e.Action) {
		return invalidEnum("action", e.Action)
	}
	if !IsValidCategory(e.Category) {
		return invalidEnum("category", e.Category)
	}
	if e.Severity != "" && !IsValidRiskLevel(e.Severity) {
		return invalidEnum("severity", e.Severity)
	}
	if e.RiskLevel != "" && !IsValidRiskLevel(e.RiskLevel) {
		return invalidEnum("risk_level", e.RiskLevel)
	}
	if e.Risk.Level != "" && !IsValidRiskLevel(e.Risk.Level) {
		return invalidEnum("risk.level", e.Risk.Level)
	}
	if !IsValidTargetType(e.Target.Type) {
		return invalidEnum("target.type", e.Target.Type)
	}
	if TargetRequiresID(e.Target.Type) && e.Target.ID == "" {
		return missingField("target.id")
	}
	if !e.IsSystemAction && (e.Actor == nil || e.Actor.ID == uuid.Nil) {
		return missingField("actor")
	}
	if e.Description == "" {
		return missingField("description")
	}
	if utf8.RuneCountInString(e.Description) > MaxDescriptionLength {
		return tooLong("description", MaxDescriptionLength)
	}
	if e.Compliance != nil && e.Compliance.Status != "" && !IsValidComplianceStatus(e.Compliance.Status) {
		return invalidEnum("compliance.status", e.Compliance.Status)
	}
	if e.Outcome != "" && e.Outcome != OutcomeSuccess && e.Outcome != OutcomeFailure {
		return invalidEnum("outcome", e.Outcome)
	}
	if e.Retention.PeriodDays < 0 {
		return &ValidationError{Field: "retention.period_days", Reason: ReasonInvalidValue, Message: "retention.period_days must not be negative"}
	}
	return nil
}
