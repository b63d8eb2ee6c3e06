package employee

import "fmt"

// Role is the position an employee holds in the approval chain.
type Role string

const (
	RoleStaff              Role = "staff"
	RoleHOD                Role = "hod"
	RolePrincipalSecretary Role = "principal_secretary"
)

func ParseRole(v string) (Role, error) {
	switch Role(v) {
	case RoleStaff, RoleHOD, RolePrincipalSecretary:
		return Role(v), nil
	default:
		return "", fmt.Errorf("unknown role: %s", v)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}
