package constants

// User roles
const (
	RoleUser  = "user"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// Elevated roles may see and mutate records owned by other users.
var ElevatedRoles = []string{
	RoleStaff,
	RoleAdmin,
}
