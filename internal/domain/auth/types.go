package auth

// Package auth contains domain-level types for authentication, sessions, and
// role-based access decisions. It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleHomeowner  Role = "homeowner"
	RoleContractor Role = "contractor"
	RoleAdjuster   Role = "adjuster"
	RoleAdmin      Role = "admin"

	// RoleUnknown is the zero value; the resolver degrades to it silently.
	RoleUnknown Role = ""
)

// ParseRole normalizes a stored role string to a known Role.
// Unrecognized values map to RoleUnknown.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleHomeowner:
		return RoleHomeowner
	case RoleContractor:
		return RoleContractor
	case RoleAdjuster:
		return RoleAdjuster
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

// Matches reports whether r equals other ignoring case.
func (r Role) Matches(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

// In reports whether r is a case-insensitive member of the given set.
func (r Role) In(set []Role) bool {
	for _, candidate := range set {
		if r.Matches(candidate) {
			return true
		}
	}
	return false
}

// Identity represents the authenticated principal returned by an IdP or the
// local credential check. Adapters map provider-specific claims into this shape.
type Identity struct {
	AuthID           string // stable auth-service identifier (e.g., sub)
	FirstName        string
	LastName         string
	Email            string
	Groups           []string
	EmailConfirmedAt *time.Time // nil until the address is confirmed
	ExpiresAt        time.Time  // absolute expiry from the provider
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier. UserID is the auth-service identifier;
// it is distinct from the legacy user-record id the resolver caches.
// Role is advisory metadata carried from login; the guard re-reads the profile
// for elevated access, and the resolver falls back to directory lookups when
// the metadata is absent.
type Session struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	Role             Role       `json:"role"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	ExpiresAt        time.Time  `json:"expires_at"`
}

// HasRoleMetadata reports whether the session carries an embedded role label.
func (s Session) HasRoleMetadata() bool { return s.Role != RoleUnknown }
