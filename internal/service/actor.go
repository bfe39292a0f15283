package service

import (
	domainauth "github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/auth"
)

// Actor identifies the requesting user for ownership checks. UserID is the
// auth-service identifier from the session; Role is the profile role the
// route guard already verified.
type Actor struct {
	UserID string
	Role   domainauth.Role
}

// isPrivileged reports whether the actor may act across ownership boundaries.
func (a Actor) isPrivileged() bool {
	return a.Role.Matches(domainauth.RoleAdmin) || a.Role.Matches(domainauth.RoleAdjuster)
}
