package models

// Categories group actions by the domain area they touch.
const (
	CategoryUserManagement = "user_management"
	CategoryPatientCare    = "patient_care"
	CategoryLaboratory     = "laboratory"
	CategoryFinancial      = "financial"
	CategoryInventory      = "inventory"
	CategoryEquipment      = "equipment"
	CategoryAppointments   = "appointments"
	CategorySystem         = "system"
	CategorySecurity       = "security"
	CategoryCompliance     = "compliance"
	CategoryDataManagement = "data_management"
)

// ActionCategories is the closed action set; the value is the action's category.
var ActionCategories = map[string]string{
	// user management
	"user_login":           CategoryUserManagement,
	"user_logout":          CategoryUserManagement,
	"user_created":         CategoryUserManagement,
	"user_updated":         CategoryUserManagement,
	"user_deleted":         CategoryUserManagement,
	"user_activated":       CategoryUserManagement,
	"user_deactivated":     CategoryUserManagement,
	"user_role_changed":    CategoryUserManagement,
	"password_changed":     CategoryUserManagement,
	"password_reset":       CategoryUserManagement,
	"login_failed":         CategorySecurity,
	"account_locked":       CategorySecurity,

	// patient care
	"patient_created":     CategoryPatientCare,
	"patient_updated":     CategoryPatientCare,
	"patient_deleted":     CategoryPatientCare,
	"patient_viewed":      CategoryPatientCare,
	"patient_merged":      CategoryPatientCare,
	"patient_data_export": CategoryPatientCare,

	// laboratory
	"sample_collected":   CategoryLaboratory,
	"sample_received":    CategoryLaboratory,
	"sample_processed":   CategoryLaboratory,
	"sample_rejected":    CategoryLaboratory,
	"sample_disposed":    CategoryLaboratory,
	"test_ordered":       CategoryLaboratory,
	"test_cancelled":     CategoryLaboratory,
	"result_entered":     CategoryLaboratory,
	"result_amended":     CategoryLaboratory,
	"report_generated":   CategoryLaboratory,
	"report_approved":    CategoryLaboratory,
	"report_rejected":    CategoryLaboratory,
	"report_delivered":   CategoryLaboratory,
	"report_printed":     CategoryLaboratory,

	// financial
	"invoice_created":  CategoryFinancial,
	"invoice_updated":  CategoryFinancial,
	"invoice_deleted":  CategoryFinancial,
	"payment_received": CategoryFinancial,
	"payment_refunded": CategoryFinancial,
	"discount_applied": CategoryFinancial,

	// inventory
	"inventory_added":    CategoryInventory,
	"inventory_updated":  CategoryInventory,
	"inventory_removed":  CategoryInventory,
	"stock_adjusted":     CategoryInventory,
	"reagent_expired":    CategoryInventory,

	// equipment
	"equipment_added":       CategoryEquipment,
	"equipment_updated":     CategoryEquipment,
	"equipment_retired":     CategoryEquipment,
	"equipment_calibrated":  CategoryEquipment,
	"equipment_maintenance": CategoryEquipment,

	// appointments
	"appointment_created":   CategoryAppointments,
	"appointment_updated":   CategoryAppointments,
	"appointment_cancelled": CategoryAppointments,
	"appointment_completed": CategoryAppointments,

	// system
	"system_startup":      CategorySystem,
	"system_shutdown":     CategorySystem,
	"settings_changed":    CategorySystem,
	"maintenance_started": CategorySystem,
	"maintenance_ended":   CategorySystem,

	// security
	"security_unauthorized_access": CategorySecurity,
	"security_permission_denied":   CategorySecurity,
	"security_suspicious_activity": CategorySecurity,
	"security_token_revoked":       CategorySecurity,
	"api_key_created":              CategorySecurity,
	"api_key_revoked":              CategorySecurity,

	// compliance
	"compliance_check_passed": CategoryCompliance,
	"compliance_check_failed": CategoryCompliance,
	"consent_recorded":        CategoryCompliance,
	"consent_withdrawn":       CategoryCompliance,
	"audit_log_exported":      CategoryCompliance,
	"retention_policy_applied": CategoryCompliance,

	// data management
	"data_exported":    CategoryDataManagement,
	"data_imported":    CategoryDataManagement,
	"backup_created":   CategoryDataManagement,
	"backup_restored":  CategoryDataManagement,
	"record_archived":  CategoryDataManagement,
	"record_purged":    CategoryDataManagement,
}

var validCategories = map[string]bool{
	CategoryUserManagement: true, CategoryPatientCare: true, CategoryLaboratory: true,
	CategoryFinancial: true, CategoryInventory: true, CategoryEquipment: true,
	CategoryAppointments: true, CategorySystem: true, CategorySecurity: true,
	CategoryCompliance: true, CategoryDataManagement: true,
}

// ActionSeverities marks actions whose intrinsic severity differs from the
// medium default. Everything not listed is medium.
var ActionSeverities = map[string]string{
	"user_login":                   RiskLow,
	"user_logout":                  RiskLow,
	"patient_viewed":               RiskLow,
	"report_printed":               RiskLow,
	"appointment_created":          RiskLow,
	"appointment_updated":          RiskLow,
	"appointment_completed":        RiskLow,
	"user_deleted":                 RiskHigh,
	"user_role_changed":            RiskHigh,
	"patient_deleted":              RiskHigh,
	"patient_merged":               RiskHigh,
	"patient_data_export":          RiskHigh,
	"result_amended":               RiskHigh,
	"report_approved":              RiskHigh,
	"invoice_deleted":              RiskHigh,
	"payment_refunded":             RiskHigh,
	"settings_changed":             RiskHigh,
	"backup_restored":              RiskHigh,
	"record_purged":                RiskHigh,
	"data_exported":                RiskHigh,
	"account_locked":               RiskHigh,
	"consent_withdrawn":            RiskHigh,
	"login_failed":                 RiskMedium,
	"security_unauthorized_access": RiskCritical,
	"security_suspicious_activity": RiskCritical,
	"compliance_check_failed":      RiskCritical,
	"security_token_revoked":       RiskHigh,
	"security_permission_denied":   RiskHigh,
}

func IsValidAction(action string) bool {
	_, ok := ActionCategories[action]
	return ok
}

func IsValidCategory(category string) bool {
	return validCategories[category]
}

// CategoryForAction returns the category an action belongs to, or "" if unknown.
func CategoryForAction(action string) string {
	return ActionCategories[action]
}

// SeverityForAction returns the intrinsic severity of an action type.
func SeverityForAction(action string) string {
	if s, ok := ActionSeverities[action]; ok {
		return s
	}
	return RiskMedium
}

// Actions returns the closed action set in no particular order.
func Actions() []string {
	out := make([]string, 0, len(ActionCategories))
	for a := range ActionCategories {
		out = append(out, a)
	}
	return out
}

// Categories returns the closed category set.
func Categories() []string {
	out := make([]string, 0, len(validCategories))
	for c := range validCategories {
		out = append(out, c)
	}
	return out
}
