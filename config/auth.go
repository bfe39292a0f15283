package config

import (
	"fmt"
	"strings"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses OAuth/OIDC for authentication.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// GuardMode selects the access-policy implementation guarding protected routes.
type GuardMode string

const (
	// GuardModeRemote performs session and profile checks against the stores
	// and fails closed. This is the production mode.
	GuardModeRemote GuardMode = "remote"
	// GuardModeAllowAll authorizes every request. Local development only.
	GuardModeAllowAll GuardMode = "allow-all"
)

// UnmarshalText implements encoding.TextUnmarshaler for GuardMode.
func (g *GuardMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "remote", "allow-all":
		*g = GuardMode(v)
		return nil
	default:
		return fmt.Errorf("invalid GuardMode: %q (valid options: remote, allow-all)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"suresight"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:"suresight"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email groups"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	LogoutURL    string `env:"LOGOUT_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	AuthID string   `env:"AUTH_ID" envDefault:"dev-user"`
	Email  string   `env:"EMAIL"   envDefault:"dev@example.com"`
	Groups []string `env:"GROUPS"  envDefault:"homeowners"      envSeparator:";"`
}

// RoleGroupsConfig maps identity-provider groups to application roles.
// A user belonging to several groups gets the most privileged match.
type RoleGroupsConfig struct {
	Admin      string `env:"ADMIN_GROUP"      envDefault:"suresight-admins"`
	Adjuster   string `env:"ADJUSTER_GROUP"   envDefault:"suresight-adjusters"`
	Contractor string `env:"CONTRACTOR_GROUP" envDefault:"suresight-contractors"`
	Homeowner  string `env:"HOMEOWNER_GROUP"  envDefault:"homeowners"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// Guard determines which access policy protects routes.
	Guard GuardMode `env:"GUARD_MODE" envDefault:"remote"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// RoleGroups maps provider groups to roles.
	RoleGroups RoleGroupsConfig `envPrefix:"ROLE_"`
}
