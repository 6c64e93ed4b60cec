package repositories

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestFilterRequiresTenant(t *testing.T) {
	f := AuditFilter{}
	if _, _, err := f.where(); err == nil {
		t.Fatal("expected error for filter without tenant scope")
	}
}

func TestFilterWhereClauses(t *testing.T) {
	tenantID := uuid.New()
	actorID := uuid.New()
	action := "patient_viewed"
	risk := "critical"
	search := "insulin"
	archived := true
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	f := AuditFilter{
		TenantID:  tenantID,
		Action:    &action,
		ActorID:   &actorID,
		RiskLevel: &risk,
		Search:    &search,
		Archived:  &archived,
		DateFrom:  &from,
		DateTo:    &to,
	}

	whereSQL, args, err := f.where()
	if err != nil {
		t.Fatal(err)
	}

	for _, clause := range []string{
		"tenant_id = $1", "action = $", "actor_id = $", "risk_level = $",
		"archived = $", "ts >= $", "ts < $", "description ILIKE $",
	} {
		if !strings.Contains(whereSQL, clause) {
			t.Errorf("where clause missing %q: %s", clause, whereSQL)
		}
	}

	if args[0] != tenantID {
		t.Errorf("first arg must be tenant scope, got %v", args[0])
	}
	// tenant + action + actor + risk + archived + from + to + search pattern
	if len(args) != 8 {
		t.Errorf("expected 8 args, got %d: %v", len(args), args)
	}

	found := false
	for _, a := range args {
		if s, ok := a.(string); ok && s == "%insulin%" {
			found = true
		}
	}
	if !found {
		t.Error("search arg should be a ILIKE pattern")
	}
}

func TestFilterEmptyOnlyScopesTenant(t *testing.T) {
	f := AuditFilter{TenantID: uuid.New()}
	whereSQL, args, err := f.where()
	if err != nil {
		t.Fatal(err)
	}
	if whereSQL != "tenant_id = $1" {
		t.Errorf("empty filter should only scope tenant, got %q", whereSQL)
	}
	if len(args) != 1 {
		t.Errorf("expected 1 arg, got %d", len(args))
	}
}

func TestFilterOrderBy(t *testing.T) {
	tests := []struct {
		sortBy    string
		sortOrder string
		want      string
	}{
		{"", "", "ORDER BY ts DESC"},
		{"timestamp", "asc", "ORDER BY ts ASC"},
		{"action", "desc", "ORDER BY action DESC"},
		{"log_id", "ASC", "ORDER BY log_id ASC"},
		// unknown columns fall back to ts, never reach the query verbatim
		{"description; DROP TABLE audit_events", "desc", "ORDER BY ts DESC"},
		{"details", "asc", "ORDER BY ts ASC"},
	}

	for _, tt := range tests {
		f := AuditFilter{SortBy: tt.sortBy, SortOrder: tt.sortOrder}
		if got := f.orderBy(); got != tt.want {
			t.Errorf("orderBy(%q, %q) = %q, want %q", tt.sortBy, tt.sortOrder, got, tt.want)
		}
	}
}

func TestArchiveQueryTenantScope(t *testing.T) {
	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	query, args := archiveQuery(uuid.Nil, cutoff)
	if strings.Contains(query, "tenant_id") {
		t.Errorf("uuid.Nil should sweep all tenants, got %q", query)
	}
	if len(args) != 1 || args[0] != cutoff {
		t.Errorf("expected [cutoff] args, got %v", args)
	}

	tenantID := uuid.New()
	query, args = archiveQuery(tenantID, cutoff)
	if !strings.Contains(query, "tenant_id = $2") {
		t.Errorf("tenant sweep must scope to the tenant, got %q", query)
	}
	if !strings.Contains(query, "archived = FALSE") {
		t.Errorf("sweep must only touch non-archived rows, got %q", query)
	}
	if len(args) != 2 || args[1] != tenantID {
		t.Errorf("expected [cutoff tenant] args, got %v", args)
	}
}

func TestStrPtr(t *testing.T) {
	if strPtr("") != nil {
		t.Error("empty string should map to NULL")
	}
	if p := strPtr("x"); p == nil || *p != "x" {
		t.Error("non-empty string should round-trip")
	}
	if deref(nil) != "" {
		t.Error("deref(nil) should be empty")
	}
}
