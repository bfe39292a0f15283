package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/UNO-CSCI4830/SureSight-sub001/config"
	httpx "github.com/UNO-CSCI4830/SureSight-sub001/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := httpx.RouterServices{
		Auth:         cfg.Services.Auth,
		Policy:       cfg.Services.Policy,
		Resolver:     cfg.Services.Resolver,
		Profiles:     cfg.Services.Profiles,
		Properties:   cfg.Services.Properties,
		Reports:      cfg.Services.Reports,
		Messages:     cfg.Services.Messages,
		CookieDomain: sanitizeCookieDomain(appCfg.HTTP.CookieDomain, logger),
		Logger:       logger,
	}
	if appCfg.Observability.MetricsEnabled {
		services.Gatherer = cfg.Services.Registry
	}

	// Order: Recover -> Logging -> Router
	h := httpx.NewRouter(services)
	h = httpx.Logging(logger)(h)
	h = httpx.Recover(logger)(h)

	return startServer(logger, h, appCfg.HTTP.Addr)
}

// sanitizeCookieDomain rejects cookie domains that sit on a public suffix.
// A cookie scoped to "com" or "co.uk" would be dropped by browsers anyway,
// so an empty domain (host-only cookie) is the safer fallback.
func sanitizeCookieDomain(domain string, logger *slog.Logger) string {
	d := strings.TrimPrefix(strings.TrimSpace(domain), ".")
	if d == "" {
		return ""
	}

	suffix, icann := publicsuffix.PublicSuffix(d)
	if icann && suffix == d {
		logger.Warn("cookie domain is a public suffix; falling back to host-only cookies", "domain", domain)
		return ""
	}
	return domain
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(cfg.Context, 10*time.Second)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
