// Package models defines the core data structures for users, tasks and
// comments, the role/status/priority enumerations, and the domain error
// taxonomy shared by repositories, services and HTTP handlers.
package models

import (
	"strings"

	"github.com/google/uuid"
)

// Role is the persisted authorization role of a user.
type Role string

const (
	// RoleAdmin may perform structural task operations
	// (create/update/delete/assign/priority).
	RoleAdmin Role = "ADMIN"
	// RoleUser may update the status of tasks assigned to them
	// and comment on those tasks.
	RoleUser Role = "USER"
)

// ParseRole matches token against the role enumeration, case-insensitively.
// An unrecognized token yields an *InvalidEnumError; it is never defaulted.
func ParseRole(token string) (Role, error) {
	switch Role(strings.ToUpper(token)) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", &InvalidEnumError{Kind: "role", Token: token}
	}
}

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID uuid.UUID `json:"id"`
	// Email is the unique login identity, stored as given at registration.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized.
	PasswordHash []byte `json:"-"`
	// Role determines which task operations the user may perform.
	// Immutable after registration.
	Role Role `json:"role"`
}

// Claims is the immutable per-request principal resolved from a bearer
// token by the authentication middleware. It is passed explicitly through
// the call chain instead of re-reading the user per check.
type Claims struct {
	// UserID is the identity the token was issued for.
	UserID uuid.UUID
	// Email is the token subject.
	Email string
	// Role is the user's persisted role at resolution time.
	Role Role
}

// IsAdmin reports whether the principal carries the ADMIN role.
func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
