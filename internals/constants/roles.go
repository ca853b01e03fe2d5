package constants

import "fmt"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

const ErrOnlyAdminsCanAccess = "only admins can access %s"

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

var (
	AllRoles = []string{
		RoleAdmin,
		RoleStaff,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsAdmin(role string) bool {
	return role == RoleAdmin
}
