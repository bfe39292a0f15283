package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/UNO-CSCI4830/SureSight-sub001/config"
	redisadapter "github.com/UNO-CSCI4830/SureSight-sub001/internal/adapters/redis"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/data"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/observability/metrics"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/ports"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth       *service.AuthService
	Policy     ports.AccessPolicy
	Resolver   *service.RoleResolver
	Profiles   *service.ProfileService
	Properties *service.PropertyService
	Reports    *service.ReportService
	Messages   *service.MessageService

	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Users      *data.UserRepo
	Profiles   *data.ProfileRepo
	Properties *data.PropertyRepo
	Reports    *data.ReportRepo
	Messages   *data.MessageRepo
}

func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		Users:      data.NewUserRepo(db),
		Profiles:   data.NewProfileRepo(db),
		Properties: data.NewPropertyRepo(db),
		Reports:    data.NewReportRepo(db),
		Messages:   data.NewMessageRepo(db),
	}
}

// NewServices builds the full service container from configuration and
// connected infrastructure.
func NewServices(deps *ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.NewWith(registry)

	repos := buildRepositories(deps.DB)

	authSvc := BuildAuthService(AuthConfig{
		Auth:        deps.Config.Auth,
		Cache:       deps.Config.Cache,
		RedisClient: deps.RedisClient,
		Users:       repos.Users,
		Metrics:     m,
		Logger:      logger,
	})

	var identity ports.IdentityCache
	if deps.RedisClient != nil {
		identity = redisadapter.NewIdentityCacheWithTTL(deps.RedisClient, deps.Config.Cache.IdentityTTL)
	}

	resolver := service.NewRoleResolver(service.RoleResolverOptions{
		Users:    repos.Users,
		Identity: identity,
		Metrics:  m,
		Logger:   logger,
	})

	// Avoid handing the policy a typed-nil session source when auth is disabled.
	var sessions service.SessionSource
	if authSvc != nil {
		sessions = authSvc
	}

	policy := BuildAccessPolicy(AccessPolicyConfig{
		Mode:     deps.Config.Auth.Guard,
		Sessions: sessions,
		Profiles: repos.Profiles,
		Users:    repos.Users,
		Metrics:  m,
		Logger:   logger,
	})

	return ServiceContainer{
		Auth:     authSvc,
		Policy:   policy,
		Resolver: resolver,
		Profiles: service.NewProfileService(service.ProfileServiceOptions{
			Profiles: repos.Profiles,
		}),
		Properties: service.NewPropertyService(service.PropertyServiceOptions{
			Properties: repos.Properties,
		}),
		Reports: service.NewReportService(service.ReportServiceOptions{
			Reports:    repos.Reports,
			Properties: repos.Properties,
		}),
		Messages: service.NewMessageService(service.MessageServiceOptions{
			Messages: repos.Messages,
		}),
		Metrics:  m,
		Registry: registry,
	}
}
