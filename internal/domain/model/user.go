//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// User is a record in the legacy user directory. It predates the hosted auth
// service, so AuthID may be missing or stale; the role resolver repairs it
// opportunistically when a record is matched by email instead.
type User struct {
	ID           string     `json:"id"                  db:"id"`
	AuthID       *string    `json:"auth_id,omitempty"   db:"auth_id"`
	Email        string     `json:"email"               db:"email"`
	FirstName    string     `json:"first_name"          db:"first_name"`
	LastName     string     `json:"last_name"           db:"last_name"`
	Role         *string    `json:"role,omitempty"      db:"role"`
	PasswordHash *string    `json:"-"                   db:"password_hash"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty" db:"confirmed_at"`
	CreatedAt    time.Time  `json:"created_at"          db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"          db:"updated_at"`
}

// CreateUserRequest represents parameters to register a new user.
type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role,omitempty"`
}

const minPasswordLen = 8

// Validate validates CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return errors.New("email is required and cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return errors.New("email must be a valid address")
	}
	if len(r.Password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
