package user

type Permission string

const (
	// Salary
	PermissionSalaryViewOwn Permission = "salary.view_own"
	PermissionSalaryViewAll Permission = "salary.view_all"
	PermissionSalaryExport  Permission = "salary.export"

	// Daily reports
	PermissionReportViewOwn Permission = "report.view_own"
	PermissionReportViewAll Permission = "report.view_all"
	PermissionReportManage  Permission = "report.manage"

	// Master data (employee profiles, pay scales)
	PermissionMasterView   Permission = "master.view"
	PermissionMasterManage Permission = "master.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		// Owner has all permissions
		PermissionSalaryViewOwn,
		PermissionSalaryViewAll,
		PermissionSalaryExport,
		PermissionReportViewOwn,
		PermissionReportViewAll,
		PermissionReportManage,
		PermissionMasterView,
		PermissionMasterManage,
	},
	RoleManager: {
		PermissionSalaryViewOwn,
		PermissionSalaryViewAll,
		PermissionSalaryExport,
		PermissionReportViewOwn,
		PermissionReportViewAll,
		PermissionReportManage,
		PermissionMasterView,
	},
	RoleEmployee: {
		PermissionSalaryViewOwn,
		PermissionReportViewOwn,
	},
	RolePending: {
		// Pending role has no permissions
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
