package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

func NewRole(value string) (Role, error) {
	role := Role(value)
	switch role {
	case RoleMember, RoleAdmin:
		return role, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
