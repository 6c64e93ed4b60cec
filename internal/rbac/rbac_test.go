package rbac

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		expected   bool
	}{
		{RoleSuperAdmin, PermViewAuditLogs, true},
		{RoleSuperAdmin, PermManageRetention, true},
		{RoleAdmin, PermManageRetention, true},
		{RoleAdmin, PermViewCompliance, true},
		{RoleComplianceOfficer, PermViewCompliance, true},
		{RoleComplianceOfficer, PermManageRetention, false},
		{RoleSecurityAdmin, PermViewRisk, true},
		{RoleSecurityAdmin, PermViewCompliance, false},
		{RoleLabManager, PermViewStats, true},
		{RoleLabManager, PermViewAuditLogs, false},
		{RoleTechnician, PermRecordAudit, true},
		{RoleTechnician, PermViewAuditLogs, false},
		{RoleReceptionist, PermExportAudit, false},
		{RoleService, PermRecordAudit, true},
		{RoleService, PermViewRisk, false},
		{"nonexistent", PermRecordAudit, false},
		{RoleAdmin, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.permission, func(t *testing.T) {
			if got := HasPermission(tt.role, tt.permission); got != tt.expected {
				t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.expected)
			}
		})
	}
}

func TestEveryRoleCanRecord(t *testing.T) {
	for role := range RolePermissions {
		if !HasPermission(role, PermRecordAudit) {
			t.Errorf("role %q cannot record audit events", role)
		}
	}
}

func TestOnlySuperAdminCrossesTenants(t *testing.T) {
	for role := range RolePermissions {
		want := role == RoleSuperAdmin
		if got := CanCrossTenants(role); got != want {
			t.Errorf("CanCrossTenants(%q) = %v, want %v", role, got, want)
		}
	}
}
