package constants

// Role names as stored in the roles table and carried in JWT claims.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleTeacher    = "teacher"
	RoleStudent    = "student"
	RoleParent     = "parent"
)

// AllRoles is the desired role set reconciled at startup.
var AllRoles = []string{
	RoleSuperAdmin,
	RoleAdmin,
	RoleTeacher,
	RoleStudent,
	RoleParent,
}

// AdminAndAbove guards institution management routes.
var AdminAndAbove = []string{RoleSuperAdmin, RoleAdmin}

// StaffAndAbove guards academic write routes (marks, attendance).
var StaffAndAbove = []string{RoleSuperAdmin, RoleAdmin, RoleTeacher}
