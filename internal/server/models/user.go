package models

import (
	"strings"
	"time"
)

// Role is the authorization level carried by a user and by issued tokens.
type Role string

const (
	RoleCandidate Role = "Candidate"
	RoleAdmin     Role = "Admin"
)

var ValidRoles = []Role{RoleCandidate, RoleAdmin}

// ParseRole maps s onto one of ValidRoles. An empty string yields the default
// role.
func ParseRole(s string) (Role, bool) {
	if s == "" {
		return RoleCandidate, true
	}
	for _, r := range ValidRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// MinPasswordLength applies to the plain password before hashing.
const MinPasswordLength = 6

// MaxPasswordLength is the bcrypt input limit in bytes.
const MaxPasswordLength = 72

type User struct {
	ID        string    `json:"id"`
	UserName  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NormalizeUserName trims surrounding whitespace.
func NormalizeUserName(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeEmail trims and lowercases an address so lookups and the unique
// constraint agree.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
