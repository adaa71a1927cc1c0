package userstore

import (
	"fmt"
	"strings"
)

// Role classifies a user's access level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"

	// RoleAll is a filter-only selector matching every role. It is never a
	// valid value for User.Role.
	RoleAll Role = "all"
)

// ParseRole normalizes input into one of the assignable roles.
func ParseRole(input string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(input)))
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, input)
	}
	return role, nil
}

// Valid reports whether the role is one of the assignable roles.
// RoleAll is not assignable.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	default:
		return false
	}
}

// User is one managed account record. IDs are store-assigned strings and
// unique within a collection.
type User struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Comment   string `json:"comment,omitempty"`
}

// FullName joins first and last name the way the name filter sees them.
func (u User) FullName() string {
	return u.Firstname + " " + u.Lastname
}

// Draft is a user submitted for creation, before the store assigns an ID.
// Field shape is validated by the form collaborator; the store only enforces
// email uniqueness.
type Draft struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Comment   string `json:"comment,omitempty"`
}

func cloneUsers(users []User) []User {
	if len(users) == 0 {
		return nil
	}
	return append([]User(nil), users...)
}
