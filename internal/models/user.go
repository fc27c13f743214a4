package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is a user role.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// User is an account with email-based authentication.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Password     string     `json:"-"` // bcrypt hash
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Phone        string     `json:"phone"`
	Role         Role       `json:"role"`
	Concerns     string     `json:"concerns"`
	HowHeard     string     `json:"how_heard"`
	ConsentData  bool       `json:"consent_data"`
	ConsentTerms bool       `json:"consent_terms"`
	ConsentDate  *time.Time `json:"consent_date,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// FullName returns "First Last".
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
