package constants

// User roles. Every account belongs to exactly one role within its center.
const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleParent  = "PARENT"
)

var AllRoles = []string{RoleAdmin, RoleTeacher, RoleParent}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
