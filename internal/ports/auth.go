package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/auth"
)

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleMapper maps provider groups to application roles.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}

// ErrCacheMiss is returned by IdentityCache lookups with no cached value.
var ErrCacheMiss = errors.New("identity cache miss")

// IdentityCache is the fast-path cache mapping an auth-service id to the
// legacy user-record id. It is an explicit, injected dependency (never ambient
// state) and is invalidated on sign-out.
type IdentityCache interface {
	GetUserID(ctx context.Context, authID string) (string, error)
	SetUserID(ctx context.Context, authID, userID string) error
	Invalidate(ctx context.Context, authID string) error
}

// AccessCheckInput carries the per-request inputs for an access decision.
type AccessCheckInput struct {
	// SessionID is the opaque session identifier from the request cookie;
	// empty when no cookie was presented.
	SessionID string

	// CurrentPath is the request path (with query) used to build the
	// post-login return target.
	CurrentPath string

	// RequiredRoles is the set of acceptable roles; empty means any
	// authenticated session is sufficient.
	RequiredRoles []domainauth.Role

	// RequireCompleteProfile requires the profile completeness flag.
	RequireCompleteProfile bool
}

// AccessDecision is the outcome of a policy check. Exactly one of the two
// shapes occurs: Authorized with a Session, or a redirect target.
type AccessDecision struct {
	Authorized bool
	RedirectTo string
	Session    *domainauth.Session
}

// AccessPolicy decides whether a request may reach protected content.
// The production implementation performs remote session and profile checks and
// fails closed; an allow-all implementation exists for dev and test harnesses.
// Selecting between them happens in bootstrap, keeping environment branching
// out of the decision logic itself.
type AccessPolicy interface {
	Check(ctx context.Context, in AccessCheckInput) AccessDecision
}
