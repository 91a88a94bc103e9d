// Package models contains the domain structures shared between the
// services, the storage layer and the HTTP handlers.
package models

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. PasswordHash is a bcrypt hash,
// the plaintext password never leaves the auth service.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"-"`
}

// Summary returns the public projection of the user, safe to put into
// API responses.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// UserSummary is the public part of a user record.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// UserStats aggregates account counts for the admin dashboard.
type UserStats struct {
	Total               int `json:"total"`
	WithSubscription    int `json:"withSubscription"`
	WithoutSubscription int `json:"withoutSubscription"`
}
