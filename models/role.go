package models

// Role is the privilege tier of a profile. The declaration order is the
// privilege order: every administrative check compares Level values, never
// role strings.
type Role string

const (
	RoleUser        Role = "user"
	RoleIntercessor Role = "intercessor"
	RoleAdmin       Role = "admin"
	RoleSuperadmin  Role = "superadmin"
)

var roleOrder = []Role{RoleUser, RoleIntercessor, RoleAdmin, RoleSuperadmin}

// Level returns the position of the role in the privilege order, or -1 for
// an unknown role. Unknown roles therefore rank below every valid role.
func (r Role) Level() int {
	for i, role := range roleOrder {
		if r == role {
			return i
		}
	}
	return -1
}

func (r Role) Valid() bool {
	return r.Level() >= 0
}

// ParseRole validates a client-supplied role string.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
