package rbac

// Role constants
const (
	RoleSuperAdmin        = "super_admin"
	RoleAdmin             = "admin"
	RoleComplianceOfficer = "compliance_officer"
	RoleSecurityAdmin     = "security_admin"
	RoleLabManager        = "lab_manager"
	RoleTechnician        = "technician"
	RoleReceptionist      = "receptionist"
	RoleService           = "service"
)

// Permission constants
const (
	PermRecordAudit     = "record_audit"
	PermViewAuditLogs   = "view_audit_logs"
	PermViewStats       = "view_audit_stats"
	PermViewCompliance  = "view_compliance_reports"
	PermViewRisk        = "view_risk_analysis"
	PermExportAudit     = "export_audit"
	PermManageRetention = "manage_retention"
)

// RolePermissions defines what each role can do. Every authenticated role may
// record events (modules audit their own actions); reading the log is
// restricted to the oversight roles.
var RolePermissions = map[string][]string{
	RoleSuperAdmin: {
		PermRecordAudit, PermViewAuditLogs, PermViewStats, PermViewCompliance,
		PermViewRisk, PermExportAudit, PermManageRetention,
	},
	RoleAdmin: {
		PermRecordAudit, PermViewAuditLogs, PermViewStats, PermViewCompliance,
		PermViewRisk, PermExportAudit, PermManageRetention,
	},
	RoleComplianceOfficer: {
		PermRecordAudit, PermViewAuditLogs, PermViewStats, PermViewCompliance,
		PermViewRisk, PermExportAudit,
	},
	RoleSecurityAdmin: {
		PermRecordAudit, PermViewAuditLogs, PermViewStats, PermViewRisk, PermExportAudit,
	},
	RoleLabManager:   {PermRecordAudit, PermViewStats},
	RoleTechnician:   {PermRecordAudit},
	RoleReceptionist: {PermRecordAudit},
	RoleService:      {PermRecordAudit},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// CanCrossTenants reports whether the role may read audit data outside its own
// lab. Only the platform super admin ever crosses tenant boundaries.
func CanCrossTenants(role string) bool {
	return role == RoleSuperAdmin
}
