//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// Profile holds the onboarding record for an authenticated user, keyed by the
// auth-service user id. The guard reads Role and ProfileComplete; everything
// else is page-flow data.
type Profile struct {
	UserID          string    `json:"user_id"          db:"user_id"`
	Role            *string   `json:"role,omitempty"   db:"role"`
	ProfileComplete bool      `json:"profile_complete" db:"profile_complete"`
	Phone           *string   `json:"phone,omitempty"  db:"phone"`
	CompanyName     *string   `json:"company_name,omitempty" db:"company_name"`
	LicenseNumber   *string   `json:"license_number,omitempty" db:"license_number"`
	CreatedAt       time.Time `json:"created_at"       db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"       db:"updated_at"`
}

// CompleteProfileRequest represents the profile-completion form submission.
type CompleteProfileRequest struct {
	Role          string  `json:"role"`
	Phone         *string `json:"phone,omitempty"`
	CompanyName   *string `json:"company_name,omitempty"`
	LicenseNumber *string `json:"license_number,omitempty"`
}

// Validate validates CompleteProfileRequest. Contractors and adjusters must
// supply company details; homeowners only need a role.
func (r *CompleteProfileRequest) Validate() error {
	role := strings.ToLower(strings.TrimSpace(r.Role))
	switch role {
	case "homeowner":
	case "contractor", "adjuster":
		if r.CompanyName == nil || strings.TrimSpace(*r.CompanyName) == "" {
			return errors.New("company_name is required for " + role + " profiles")
		}
	default:
		return errors.New("role must be one of: homeowner, contractor, adjuster")
	}
	r.Role = role
	return nil
}
