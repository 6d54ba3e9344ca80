package model

import (
	"fmt"

	"github.com/perryhq/roofline/internal/common"
)

// Role is a user's access level.
type Role string

// Roles.
const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// User is a team member record. Password is plaintext mock-auth data; it is
// stripped before any session serialization and never logged.
type User struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     Role   `json:"role" validate:"required,oneof=admin manager"`
	Password string `json:"-"`
}

// SessionUser is the persisted session record: the user with the password
// stripped.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session returns the serializable, password-free view of the user.
func (u *User) Session() SessionUser {
	return SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// RequireAdmin returns an error unless the identity holds the admin role.
// Identity is always passed explicitly; there is no ambient current user.
func RequireAdmin(identity SessionUser) error {
	if identity.Role != RoleAdmin {
		return fmt.Errorf("%w: requires admin role (current role %q)", common.ErrNotPermitted, identity.Role)
	}
	return nil
}
