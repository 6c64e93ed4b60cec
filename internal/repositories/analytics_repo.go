package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pathlab-audit/backend/internal/models"
)

// AnalyticsRepo runs the grouping/windowing queries behind the statistics,
// compliance and risk reports. All queries are tenant-scoped reads.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepo(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// bucketFormat maps a granularity to the to_char format that names its bucket.
// Formats are fixed so identical input always lands in the same bucket.
func bucketFormat(granularity string) string {
	switch granularity {
	case models.GranularityHourly:
		return `YYYY-MM-DD HH24:00`
	case models.GranularityWeekly:
		return `IYYY-"W"IW`
	default:
		return `YYYY-MM-DD`
	}
}

func (r *AnalyticsRepo) TotalCount(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM audit_events
		WHERE tenant_id = $1 AND ts >= $2 AND ts < $3
	`, tenantID, from, to).Scan(&total)
	return total, err
}

func (r *AnalyticsRepo) CountByAction(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]models.ActionCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT action, count(*) FROM audit_events
		WHERE tenant_id = $1 AND ts >= $2 AND ts < $3
		GROUP BY action ORDER BY count(*) DESC
	`, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ActionCount
	for rows.Next() {
		var c models.ActionCount
		if err := rows.Scan(&c.Action, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) CountByCategory(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]models.CategoryCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category, count(*) FROM audit_events
		WHERE tenant_id = $1 AND ts >= $2 AND ts < $3
		GROUP BY category ORDER BY count(*) DESC
	`, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CategoryCount
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) CountByRiskLevel(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]models.RiskLevelCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT risk_level, count(*) FROM audit_events
		WHERE tenant_id = $1 AND ts >= $2 AND ts < $3
		GROUP BY risk_level ORDER BY count(*) DESC
	`, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RiskLevelCount
	for rows.Next() {
		var c models.RiskLevelCount
		if err := rows.Scan(&c.Level, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) TopActors(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]models.ActorActivity, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT actor_id, max(actor_name), max(actor_email), count(*),
		       max(ts), array_agg(DISTINCT action)
		FROM audit_events
		WHERE tenant_id = $1 AND ts >= $2 AND ts < $3 AND actor_id IS NOT NULL
		GROUP BY actor_id ORDER BY count(*) DESC LIMIT $4
	`, tenantID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ActorActivity
	for rows.Next() {
		var a models.ActorActivity
		var name, email *string
		if err := rows.Scan(&a.ActorID, &name, &email, &a.Count, &a.LastActivity, &a.Actions); err != nil {
			return nil, err
		}
		a.Name = deref(name)
		a.Email = deref(email)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) Timeline(ctx context.Context, tenantID uuid.UUID, from, to time.Time, granularity string) ([]models.TimelineBucket, error) {
	query := fmt.Sprintf(`
		SELECT to_char(ts AT TIME ZONE 'UTC', '%s') AS bucket,
		       count(*),
		       count(*) FILTER (WHERE risk_level = 'high'),
		       count(*) FILTER (WHERE risk_level = 'critical')
		FROM audit_events
		WHERE tenant_id = $1 AND ts >= $2 AND ts < $3
		GROUP BY bucket ORDER BY bucket
	`, bucketFormat(granularity))

	rows, err := r.pool.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TimelineBucket
	for rows.Next() {
		var b models.TimelineBucket
		if err := rows.Scan(&b.Bucket, &b.Total, &b.HighRisk, &b.Critical); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ComplianceCounts returns the totals for events flagged against a standard.
func (r *AnalyticsRepo) ComplianceCounts(ctx context.Context, tenantID uuid.UUID, standard string, from, to time.Time) (total, violations int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE compliance_status = 'non_compliant')
		FROM audit_events
		WHERE tenant_id = $1 AND compliance_regulation = $2 AND ts >= $3 AND ts < $4
	`, tenantID, standard, from, to).Scan(&total, &violations)
	return total, violations, err
}

// ViolationTypes breaks non-compliant events down by action, with the highest
// observed severity and a handful of example descriptions per type.
func (r *AnalyticsRepo) ViolationTypes(ctx context.Context, tenantID uuid.UUID, standard string, from, to time.Time) ([]models.ViolationType, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT action, count(*),
		       max(CASE severity
		           WHEN 'critical' THEN 3 WHEN 'high' THEN 2 WHEN 'medium' THEN 1 ELSE 0 END),
		       (array_agg(description ORDER BY ts DESC))[1:3]
		FROM audit_events
		WHERE tenant_id = $1 AND compliance_regulation = $2
		  AND compliance_status = 'non_compliant' AND ts >= $3 AND ts < $4
		GROUP BY action ORDER BY count(*) DESC
	`, tenantID, standard, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	levels := []string{models.RiskLow, models.RiskMedium, models.RiskHigh, models.RiskCritical}
	var out []models.ViolationType
	for rows.Next() {
		var v models.ViolationType
		var sevRank int
		if err := rows.Scan(&v.Action, &v.Count, &sevRank, &v.Examples); err != nil {
			return nil, err
		}
		if sevRank >= 0 && sevRank < len(levels) {
			v.Severity = levels[sevRank]
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// DailyComplianceRates computes compliant/total per calendar day for a standard.
func (r *AnalyticsRepo) DailyComplianceRates(ctx context.Context, tenantID uuid.UUID, standard string, from, to time.Time) ([]models.DailyComplianceRate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(ts AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
		       count(*) FILTER (WHERE compliance_status = 'compliant'),
		       count(*)
		FROM audit_events
		WHERE tenant_id = $1 AND compliance_regulation = $2 AND ts >= $3 AND ts < $4
		GROUP BY day ORDER BY day
	`, tenantID, standard, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DailyComplianceRate
	for rows.Next() {
		var d models.DailyComplianceRate
		if err := rows.Scan(&d.Date, &d.ComplianceActions, &d.TotalActions); err != nil {
			return nil, err
		}
		if d.TotalActions > 0 {
			d.Rate = float64(d.ComplianceActions) / float64(d.TotalActions) * 100
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DailyRiskTrend counts events per risk level per calendar day.
func (r *AnalyticsRepo) DailyRiskTrend(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]models.RiskTrendPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(ts AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
		       count(*) FILTER (WHERE risk_level = 'low'),
		       count(*) FILTER (WHERE risk_level = 'medium'),
		       count(*) FILTER (WHERE risk_level = 'high'),
		       count(*) FILTER (WHERE risk_level = 'critical')
		FROM audit_events
		WHERE tenant_id = $1 AND ts >= $2 AND ts < $3
		GROUP BY day ORDER BY day
	`, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RiskTrendPoint
	for rows.Next() {
		var p models.RiskTrendPoint
		if err := rows.Scan(&p.Date, &p.Low, &p.Medium, &p.High, &p.Critical); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ActorRiskProfiles ranks actors by the weighted risk score over the window.
// Score weights follow models.RiskWeight*.
func (r *AnalyticsRepo) ActorRiskProfiles(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]models.ActorRiskProfile, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`
		SELECT actor_id, max(actor_name),
		       sum(CASE risk_level
		           WHEN 'critical' THEN %d WHEN 'high' THEN %d
		           WHEN 'medium' THEN %d ELSE %d END),
		       count(*),
		       count(*) FILTER (WHERE outcome = 'failure'),
		       count(*) FILTER (WHERE risk_level = 'critical'),
		       count(*) FILTER (WHERE risk_level = 'high'),
		       count(DISTINCT target_type),
		       count(DISTINCT actor_ip) FILTER (WHERE actor_ip IS NOT NULL)
		FROM audit_events
		WHERE tenant_id = $1 AND ts >= $2 AND ts < $3 AND actor_id IS NOT NULL
		GROUP BY actor_id ORDER BY 3 DESC LIMIT $4
	`, models.RiskWeightCritical, models.RiskWeightHigh, models.RiskWeightMedium, models.RiskWeightLow)

	rows, err := r.pool.Query(ctx, query, tenantID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ActorRiskProfile
	for rows.Next() {
		var p models.ActorRiskProfile
		var name *string
		if err := rows.Scan(&p.ActorID, &name, &p.RiskScore, &p.TotalActions, &p.FailedActions,
			&p.CriticalCount, &p.HighCount, &p.DistinctResources, &p.DistinctIPs); err != nil {
			return nil, err
		}
		p.Name = deref(name)
		if p.TotalActions > 0 {
			p.FailureRate = float64(p.FailedActions) / float64(p.TotalActions) * 100
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ResourceRisks ranks target types by riskEvents*5 + failedAccess*2 and
// reports access concentration (total access over distinct users).
func (r *AnalyticsRepo) ResourceRisks(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]models.ResourceRisk, error) {
	query := fmt.Sprintf(`
		SELECT target_type,
		       count(*),
		       count(*) FILTER (WHERE risk_level IN ('high', 'critical')),
		       count(*) FILTER (WHERE outcome = 'failure'),
		       count(DISTINCT actor_id) FILTER (WHERE actor_id IS NOT NULL)
		FROM audit_events
		WHERE tenant_id = $1 AND ts >= $2 AND ts < $3
		GROUP BY target_type
		ORDER BY count(*) FILTER (WHERE risk_level IN ('high', 'critical')) * %d
		       + count(*) FILTER (WHERE outcome = 'failure') * %d DESC
	`, models.ResourceWeightRiskEvent, models.ResourceWeightFailedAccess)

	rows, err := r.pool.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ResourceRisk
	for rows.Next() {
		var rr models.ResourceRisk
		if err := rows.Scan(&rr.TargetType, &rr.TotalAccess, &rr.RiskEvents, &rr.FailedAccess, &rr.DistinctUsers); err != nil {
			return nil, err
		}
		rr.RiskScore = rr.RiskEvents*models.ResourceWeightRiskEvent + rr.FailedAccess*models.ResourceWeightFailedAccess
		if rr.DistinctUsers > 0 {
			rr.Concentration = float64(rr.TotalAccess) / float64(rr.DistinctUsers)
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
