package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/UNO-CSCI4830/SureSight-sub001/config"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/adapters/authroles"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/adapters/devauth"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/adapters/oidc"
	redisadapter "github.com/UNO-CSCI4830/SureSight-sub001/internal/adapters/redis"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/core"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/observability/metrics"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/ports"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/service"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	Cache       config.CacheConfig
	RedisClient redis.UniversalClient
	Users       core.UserRepository
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
// Returns nil if auth is not configured or configuration is invalid.
func BuildAuthService(cfg AuthConfig) *service.AuthService {
	if cfg.RedisClient == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: redis client not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}

	// Redis session store and identity cache shared by both modes
	sessionStore := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "session:")
	identityCache := redisadapter.NewIdentityCacheWithTTL(cfg.RedisClient, cfg.Cache.IdentityTTL)

	roleMapper := buildRoleMapper(cfg.Auth.RoleGroups)

	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return buildDevAuthService(cfg, sessionStore, identityCache, roleMapper)

	case config.AuthModeOAuth:
		return buildOAuthService(cfg, sessionStore, identityCache, roleMapper)

	default:
		return nil
	}
}

func buildRoleMapper(groups config.RoleGroupsConfig) authroles.StaticRoleMapper {
	return authroles.StaticRoleMapper{
		AdminGroup:      groups.Admin,
		AdjusterGroup:   groups.Adjuster,
		ContractorGroup: groups.Contractor,
		HomeownerGroup:  groups.Homeowner,
	}
}

func buildDevAuthService(
	cfg AuthConfig,
	sessionStore *redisadapter.SessionStore,
	identityCache *redisadapter.IdentityCache,
	roleMapper authroles.StaticRoleMapper,
) *service.AuthService {
	// Explicitly enabled dev auth mode; build a local provider.
	prov, err := devauth.NewProvider(devauth.Config{
		AuthID: cfg.Auth.DevAuth.AuthID,
		Email:  cfg.Auth.DevAuth.Email,
		Groups: cfg.Auth.DevAuth.Groups,
		// session duration defaults inside provider
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create dev auth provider, auth disabled", "error", err)
		}
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: prov,
		Sessions: sessionStore,
		Roles:    roleMapper,
		Users:    cfg.Users,
		Identity: identityCache,
		Metrics:  cfg.Metrics,
		Logger:   cfg.Logger,
	})
}

func buildOAuthService(
	cfg AuthConfig,
	sessionStore *redisadapter.SessionStore,
	identityCache *redisadapter.IdentityCache,
	roleMapper authroles.StaticRoleMapper,
) *service.AuthService {
	// Only enable when fully configured
	oauth := cfg.Auth.OAuth
	if oauth.DiscoveryURL == "" || oauth.ClientID == "" || oauth.ClientSecret == "" {
		if cfg.Logger != nil {
			cfg.Logger.Warn("AuthModeOAuth selected but required config missing; auth disabled",
				"discovery_url_empty", oauth.DiscoveryURL == "",
				"client_id_empty", oauth.ClientID == "",
				"client_secret_empty", oauth.ClientSecret == "",
			)
		}
		return nil
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     oauth.ClientID,
		ClientSecret: oauth.ClientSecret,
		RedirectURL:  oauth.RedirectURL,
		Scope:        oauth.Scope,
		DiscoveryURL: oauth.DiscoveryURL,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create OIDC provider, auth disabled", "error", err)
		}
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: prov,
		Sessions: sessionStore,
		Roles:    roleMapper,
		Users:    cfg.Users,
		Identity: identityCache,
		Metrics:  cfg.Metrics,
		Logger:   cfg.Logger,
	})
}

// AccessPolicyConfig groups dependencies for selecting the route guard.
type AccessPolicyConfig struct {
	Mode     config.GuardMode
	Sessions service.SessionSource
	Profiles core.ProfileRepository
	Users    core.UserRepository
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// BuildAccessPolicy selects the access-policy implementation for the
// configured guard mode. The environment branching lives here so the guard
// itself stays free of mode checks.
//
//nolint:ireturn // callers depend on the port, not a concrete policy.
func BuildAccessPolicy(cfg AccessPolicyConfig) ports.AccessPolicy {
	if cfg.Mode == config.GuardModeAllowAll {
		if cfg.Logger != nil {
			cfg.Logger.Warn("access guard running in allow-all mode; do not use in production")
		}
		return service.AllowAllPolicy{Sessions: cfg.Sessions}
	}

	return service.NewAccessGuard(service.AccessGuardOptions{
		Sessions: cfg.Sessions,
		Profiles: cfg.Profiles,
		Users:    cfg.Users,
		Metrics:  cfg.Metrics,
		Logger:   cfg.Logger,
	})
}
