package domain

// Role is the closed set of user roles. Every user record carries exactly
// one of these.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RoleManager Role = "manager"
)

// DefaultRole is assigned when registration does not specify a role.
const DefaultRole = RoleUser

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleManager:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }
