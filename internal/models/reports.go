package models

import (
	"time"

	"github.com/google/uuid"
)

// Timeline granularities
const (
	GranularityHourly = "hourly"
	GranularityDaily  = "daily"
	GranularityWeekly = "weekly"
)

func IsValidGranularity(g string) bool {
	return g == GranularityHourly || g == GranularityDaily || g == GranularityWeekly
}

type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type ActionCount struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type RiskLevelCount struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

type ActorActivity struct {
	ActorID      uuid.UUID `json:"actor_id"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Count        int       `json:"count"`
	LastActivity time.Time `json:"last_activity"`
	Actions      []string  `json:"actions"`
}

type TimelineBucket struct {
	Bucket   string `json:"bucket"`
	Total    int    `json:"total"`
	HighRisk int    `json:"high_risk"`
	Critical int    `json:"critical"`
}

type AuditStats struct {
	Period      Period           `json:"period"`
	Granularity string           `json:"granularity"`
	TotalLogs   int              `json:"total_logs"`
	ByAction    []ActionCount    `json:"by_action"`
	ByCategory  []CategoryCount  `json:"by_category"`
	ByRiskLevel []RiskLevelCount `json:"by_risk_level"`
	TopActors   []ActorActivity  `json:"top_actors"`
	Timeline    []TimelineBucket `json:"timeline"`
}

type ViolationType struct {
	Action   string   `json:"action"`
	Count    int      `json:"count"`
	Severity string   `json:"severity"`
	Examples []string `json:"examples"`
}

type DailyComplianceRate struct {
	Date              string  `json:"date"`
	ComplianceActions int     `json:"compliance_actions"`
	TotalActions      int     `json:"total_actions"`
	Rate              float64 `json:"rate"`
}

type ComplianceSummary struct {
	TotalComplianceLogs   int     `json:"total_compliance_logs"`
	TotalViolations       int     `json:"total_violations"`
	ViolationTypeCount    int     `json:"violation_type_count"`
	OverallComplianceRate float64 `json:"overall_compliance_rate"`
}

type ComplianceReport struct {
	Standard     string                `json:"standard"`
	Period       Period                `json:"period"`
	Summary      ComplianceSummary     `json:"summary"`
	Violations   []ViolationType       `json:"violations"`
	DailyRates   []DailyComplianceRate `json:"daily_rates"`
	RecentEvents []AuditEvent          `json:"recent_events"`
}

type RiskTrendPoint struct {
	Date     string `json:"date"`
	Low      int    `json:"low"`
	Medium   int    `json:"medium"`
	High     int    `json:"high"`
	Critical int    `json:"critical"`
}

type ActorRiskProfile struct {
	ActorID           uuid.UUID `json:"actor_id"`
	Name              string    `json:"name,omitempty"`
	RiskScore         int       `json:"risk_score"`
	TotalActions      int       `json:"total_actions"`
	FailedActions     int       `json:"failed_actions"`
	FailureRate       float64   `json:"failure_rate"`
	CriticalCount     int       `json:"critical_count"`
	HighCount         int       `json:"high_count"`
	DistinctResources int       `json:"distinct_resources"`
	DistinctIPs       int       `json:"distinct_ips"`
}

type ResourceRisk struct {
	TargetType    string  `json:"target_type"`
	TotalAccess   int     `json:"total_access"`
	RiskEvents    int     `json:"risk_events"`
	FailedAccess  int     `json:"failed_access"`
	RiskScore     int     `json:"risk_score"`
	DistinctUsers int     `json:"distinct_users"`
	Concentration float64 `json:"concentration"`
}

type RiskAnalysis struct {
	Period         Period             `json:"period"`
	DailyTrend     []RiskTrendPoint   `json:"daily_trend"`
	ElevatedEvents []AuditEvent       `json:"elevated_events"`
	ActorProfiles  []ActorRiskProfile `json:"actor_profiles"`
	ResourceRisks  []ResourceRisk     `json:"resource_risks"`
}

type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
	Limit   int `json:"limit"`
}
