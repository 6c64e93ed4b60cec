package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pathlab-audit/backend/internal/models"
)

const auditColumns = `
	id, log_id, tenant_id, action, category, severity, risk_level,
	actor_id, actor_name, actor_email, actor_role, actor_ip, actor_user_agent,
	target_type, target_id, target_name, target_identifier,
	description, details,
	compliance_regulation, compliance_requirement, compliance_status,
	risk_factors, risk_mitigation,
	outcome, is_system_action, is_automated, tags,
	retention_period_days, delete_after, archived, archived_at,
	ts, created_at`

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// nextSequence atomically bumps and returns the per-tenant-per-day sequence.
// Must run inside the same transaction as the event insert so a failed insert
// does not burn a visible gap under the unique log_id constraint.
func nextSequence(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, day time.Time) (int, error) {
	var seq int
	err := tx.QueryRow(ctx, `
		INSERT INTO audit_log_sequences (tenant_id, day, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, day) DO UPDATE SET seq = audit_log_sequences.seq + 1
		RETURNING seq
	`, tenantID, day.UTC().Format("2006-01-02")).Scan(&seq)
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// Create persists one event, assigning its log id from the tenant-day sequence
// in the same transaction. The event's LogID field is set on success.
func (r *AuditRepo) Create(ctx context.Context, e *models.AuditEvent) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	seq, err := nextSequence(ctx, tx, e.TenantID, e.Timestamp)
	if err != nil {
		return err
	}
	if seq > models.MaxDailySequence {
		return models.ErrSequenceExhausted
	}
	e.LogID = models.FormatLogID(e.Timestamp, seq)

	var details []byte
	if e.Details != nil {
		details, err = json.Marshal(e.Details)
		if err != nil {
			return err
		}
	}

	var actorID *uuid.UUID
	var actorName, actorEmail, actorRole, actorIP, actorUA *string
	if e.Actor != nil {
		actorID = &e.Actor.ID
		actorName = strPtr(e.Actor.Name)
		actorEmail = strPtr(e.Actor.Email)
		actorRole = strPtr(e.Actor.Role)
		actorIP = strPtr(e.Actor.IPAddress)
		actorUA = strPtr(e.Actor.UserAgent)
	}

	var compRegulation, compRequirement, compStatus *string
	if e.Compliance != nil {
		compRegulation = strPtr(e.Compliance.Regulation)
		compRequirement = strPtr(e.Compliance.Requirement)
		compStatus = strPtr(e.Compliance.Status)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO audit_events (
			log_id, tenant_id, action, category, severity, risk_level,
			actor_id, actor_name, actor_email, actor_role, actor_ip, actor_user_agent,
			target_type, target_id, target_name, target_identifier,
			description, details,
			compliance_regulation, compliance_requirement, compliance_status,
			risk_factors, risk_mitigation,
			outcome, is_system_action, is_automated, tags,
			retention_period_days, delete_after, ts
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16,
			$17, $18,
			$19, $20, $21,
			$22, $23,
			$24, $25, $26, $27,
			$28, $29, $30
		)
		RETURNING id, created_at
	`,
		e.LogID, e.TenantID, e.Action, e.Category, e.Severity, e.RiskLevel,
		actorID, actorName, actorEmail, actorRole, actorIP, actorUA,
		e.Target.Type, strPtr(e.Target.ID), strPtr(e.Target.Name), strPtr(e.Target.Identifier),
		e.Description, details,
		compRegulation, compRequirement, compStatus,
		e.Risk.Factors, strPtr(e.Risk.Mitigation),
		e.Outcome, e.IsSystemAction, e.IsAutomated, e.Tags,
		e.Retention.PeriodDays, e.Retention.DeleteAfter, e.Timestamp,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID fetches one event. tenantID scopes the lookup; pass uuid.Nil only
// for the cross-tenant super admin path.
func (r *AuditRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.AuditEvent, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_events WHERE id = $1`
	args := []any{id}
	if tenantID != uuid.Nil {
		query += ` AND tenant_id = $2`
		args = append(args, tenantID)
	}

	row := r.pool.QueryRow(ctx, query, args...)
	e, err := scanAuditEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// AuditFilter carries the query vocabulary of the list, export and report
// endpoints. TenantID is mandatory; an unscoped query is a programming error.
type AuditFilter struct {
	TenantID uuid.UUID

	Action             *string
	Category           *string
	ActorID            *uuid.UUID
	RiskLevel          *string
	Severity           *string
	ComplianceStandard *string
	Search             *string
	IPAddress          *string
	Outcome            *string
	Tag                *string
	Archived           *bool
	DateFrom           *time.Time // inclusive
	DateTo             *time.Time // exclusive

	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// sortColumns is the allow-list for SortBy; values map to real columns.
var sortColumns = map[string]string{
	"timestamp":  "ts",
	"created_at": "created_at",
	"action":     "action",
	"category":   "category",
	"risk_level": "risk_level",
	"severity":   "severity",
	"log_id":     "log_id",
}

func (f *AuditFilter) where() (string, []any, error) {
	if f.TenantID == uuid.Nil {
		return "", nil, fmt.Errorf("audit filter missing tenant scope")
	}

	where := []string{"tenant_id = $1"}
	args := []any{f.TenantID}
	idx := 2

	add := func(clause string, value any) {
		where = append(where, fmt.Sprintf(clause, idx))
		args = append(args, value)
		idx++
	}

	if f.Action != nil {
		add("action = $%d", *f.Action)
	}
	if f.Category != nil {
		add("category = $%d", *f.Category)
	}
	if f.ActorID != nil {
		add("actor_id = $%d", *f.ActorID)
	}
	if f.RiskLevel != nil {
		add("risk_level = $%d", *f.RiskLevel)
	}
	if f.Severity != nil {
		add("severity = $%d", *f.Severity)
	}
	if f.ComplianceStandard != nil {
		add("compliance_regulation = $%d", *f.ComplianceStandard)
	}
	if f.IPAddress != nil {
		add("actor_ip = $%d", *f.IPAddress)
	}
	if f.Outcome != nil {
		add("outcome = $%d", *f.Outcome)
	}
	if f.Tag != nil {
		add("$%d = ANY(tags)", *f.Tag)
	}
	if f.Archived != nil {
		add("archived = $%d", *f.Archived)
	}
	if f.DateFrom != nil {
		add("ts >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("ts < $%d", *f.DateTo)
	}
	if f.Search != nil && *f.Search != "" {
		pattern := "%" + *f.Search + "%"
		where = append(where, fmt.Sprintf(
			"(description ILIKE $%d OR actor_name ILIKE $%d OR actor_email ILIKE $%d OR target_name ILIKE $%d OR target_identifier ILIKE $%d)",
			idx, idx, idx, idx, idx))
		args = append(args, pattern)
		idx++
	}

	return strings.Join(where, " AND "), args, nil
}

func (f *AuditFilter) orderBy() string {
	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "ts"
	}
	dir := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		dir = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s", col, dir)
}

// List returns one page of matching events plus the total match count.
func (r *AuditRepo) List(ctx context.Context, f AuditFilter) ([]models.AuditEvent, int, error) {
	whereSQL, args, err := f.where()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM audit_events WHERE "+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf("SELECT %s FROM audit_events WHERE %s %s LIMIT $%d OFFSET $%d",
		auditColumns, whereSQL, f.orderBy(), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events, err := collectAuditEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// ListAll returns up to maxRows matching events without pagination, for export.
func (r *AuditRepo) ListAll(ctx context.Context, f AuditFilter, maxRows int) ([]models.AuditEvent, error) {
	whereSQL, args, err := f.where()
	if err != nil {
		return nil, err
	}
	if maxRows <= 0 {
		maxRows = 10000
	}

	query := fmt.Sprintf("SELECT %s FROM audit_events WHERE %s %s LIMIT $%d",
		auditColumns, whereSQL, f.orderBy(), len(args)+1)
	args = append(args, maxRows)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAuditEvents(rows)
}

// ListElevated returns high and critical risk events in the window, newest
// first, capped at limit.
func (r *AuditRepo) ListElevated(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]models.AuditEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+auditColumns+` FROM audit_events
		WHERE tenant_id = $1 AND ts >= $2 AND ts < $3 AND risk_level IN ('high', 'critical')
		ORDER BY ts DESC LIMIT $4
	`, tenantID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAuditEvents(rows)
}

// ListComplianceFlagged returns the most recent events flagged against a
// compliance standard, capped at limit.
func (r *AuditRepo) ListComplianceFlagged(ctx context.Context, tenantID uuid.UUID, standard string, from, to time.Time, limit int) ([]models.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+auditColumns+` FROM audit_events
		WHERE tenant_id = $1 AND compliance_regulation = $2 AND ts >= $3 AND ts < $4
		ORDER BY ts DESC LIMIT $5
	`, tenantID, standard, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAuditEvents(rows)
}

// ArchiveOlderThan marks non-archived events created before cutoff as
// archived. uuid.Nil sweeps all tenants; anything else stays inside that
// tenant. Idempotent; returns the number of rows flipped this run.
func (r *AuditRepo) ArchiveOlderThan(ctx context.Context, tenantID uuid.UUID, cutoff time.Time) (int64, error) {
	query, args := archiveQuery(tenantID, cutoff)
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// archiveQuery builds the archival update. The update only touches rows where
// archived is still FALSE, so re-running it over the same cutoff is a no-op.
func archiveQuery(tenantID uuid.UUID, cutoff time.Time) (string, []any) {
	query := `
		UPDATE audit_events
		SET archived = TRUE, archived_at = now()
		WHERE archived = FALSE AND created_at < $1
	`
	args := []any{cutoff}
	if tenantID != uuid.Nil {
		query += " AND tenant_id = $2"
		args = append(args, tenantID)
	}
	return query, args
}

// PurgeExpired permanently deletes events past their retention deadline.
func (r *AuditRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM audit_events WHERE delete_after < $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuditEvent(row rowScanner) (*models.AuditEvent, error) {
	var e models.AuditEvent
	var actorID *uuid.UUID
	var actorName, actorEmail, actorRole, actorIP, actorUA *string
	var targetID, targetName, targetIdentifier *string
	var details []byte
	var compRegulation, compRequirement, compStatus *string
	var riskMitigation *string

	err := row.Scan(
		&e.ID, &e.LogID, &e.TenantID, &e.Action, &e.Category, &e.Severity, &e.RiskLevel,
		&actorID, &actorName, &actorEmail, &actorRole, &actorIP, &actorUA,
		&e.Target.Type, &targetID, &targetName, &targetIdentifier,
		&e.Description, &details,
		&compRegulation, &compRequirement, &compStatus,
		&e.Risk.Factors, &riskMitigation,
		&e.Outcome, &e.IsSystemAction, &e.IsAutomated, &e.Tags,
		&e.Retention.PeriodDays, &e.Retention.DeleteAfter, &e.Retention.Archived, &e.Retention.ArchivedAt,
		&e.Timestamp, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if actorID != nil {
		e.Actor = &models.ActorInfo{
			ID:        *actorID,
			Name:      deref(actorName),
			Email:     deref(actorEmail),
			Role:      deref(actorRole),
			IPAddress: deref(actorIP),
			UserAgent: deref(actorUA),
		}
	}
	e.Target.ID = deref(targetID)
	e.Target.Name = deref(targetName)
	e.Target.Identifier = deref(targetIdentifier)

	if len(details) > 0 {
		var d models.ChangeDetails
		if err := json.Unmarshal(details, &d); err != nil {
			return nil, err
		}
		e.Details = &d
	}
	if compRegulation != nil || compRequirement != nil || compStatus != nil {
		e.Compliance = &models.ComplianceInfo{
			Regulation:  deref(compRegulation),
			Requirement: deref(compRequirement),
			Status:      deref(compStatus),
		}
	}
	e.Risk.Level = e.RiskLevel
	e.Risk.Mitigation = deref(riskMitigation)

	return &e, nil
}

func collectAuditEvents(rows pgx.Rows) ([]models.AuditEvent, error) {
	var events []models.AuditEvent
	for rows.Next() {
		e, err := scanAuditEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}
