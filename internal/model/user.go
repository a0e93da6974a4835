package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// Role names assignable to users
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account holder
type User struct {
	ID           UserID
	Email        string
	PasswordHash string // bcrypt hash, never serialized in responses
	FullName     string
	IsActive     bool
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user holds the given role
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
