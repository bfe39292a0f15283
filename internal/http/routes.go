package httpx

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	domainauth "github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/auth"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/ports"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth       *service.AuthService
	Policy     ports.AccessPolicy
	Resolver   *service.RoleResolver
	Profiles   *service.ProfileService
	Properties *service.PropertyService
	Reports    *service.ReportService
	Messages   *service.MessageService

	CookieDomain string
	Logger       *slog.Logger

	// Gatherer backs the /metrics endpoint. Nil disables it.
	Gatherer prometheus.Gatherer
}

// NewRouter creates and configures the HTTP router with the access-policy
// middleware applied per route group.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Svc: services.Auth, CookieDomain: services.CookieDomain, Logger: services.Logger}
	profileHandlers := &ProfileHandlers{Svc: services.Profiles}
	propertyHandlers := &PropertyHandlers{Svc: services.Properties}
	reportHandlers := &ReportHandlers{Svc: services.Reports}
	messageHandlers := &MessageHandlers{Svc: services.Messages}
	layoutHandlers := &LayoutHandlers{Sessions: services.Auth, Resolver: services.Resolver}

	registerAuthRoutes(mux, authHandlers)
	registerPageRoutes(mux, services.Policy)
	registerProfileRoutes(mux, profileHandlers, services.Policy)
	registerPropertyRoutes(mux, propertyHandlers, services.Policy)
	registerReportRoutes(mux, reportHandlers, services.Policy)
	registerMessageRoutes(mux, messageHandlers, services.Policy)

	mux.Handle("GET /api/layout", http.HandlerFunc(layoutHandlers.Layout))
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	if services.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(services.Gatherer, promhttp.HandlerOpts{}))
	}

	return BrowserDetection()(mux)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.Handle("GET /auth/login", http.HandlerFunc(h.Login))
	mux.Handle("GET /auth/callback", http.HandlerFunc(h.Callback))
	mux.Handle("POST /auth/logout", http.HandlerFunc(h.Logout))
	mux.Handle("POST /api/auth/signup", http.HandlerFunc(h.Signup))
	mux.Handle("POST /api/auth/login", http.HandlerFunc(h.PasswordLogin))
	mux.Handle("GET /api/auth/status", http.HandlerFunc(h.Status))
}

// registerPageRoutes wires the browser-facing shell pages. Each one is a thin
// HTML document that boots the front-end; what matters server-side is which
// access requirement gates it.
func registerPageRoutes(mux *http.ServeMux, policy ports.AccessPolicy) {
	anySession := RequireAccess(policy, RouteRequirement{})
	completeProfile := RequireAccess(policy, RouteRequirement{CompleteProfile: true})
	homeownerOnly := RequireAccess(policy, RouteRequirement{
		Roles:           []domainauth.Role{domainauth.RoleHomeowner},
		CompleteProfile: true,
	})
	reportRoles := RequireAccess(policy, RouteRequirement{
		Roles:           []domainauth.Role{domainauth.RoleHomeowner, domainauth.RoleContractor},
		CompleteProfile: true,
	})
	adjusterOnly := RequireAccess(policy, RouteRequirement{
		Roles:           []domainauth.Role{domainauth.RoleAdjuster, domainauth.RoleAdmin},
		CompleteProfile: true,
	})

	mux.Handle("GET /", http.HandlerFunc(servePage("SureSight")))
	mux.Handle("GET /login", http.HandlerFunc(servePage("Sign in")))
	mux.Handle("GET /unauthorized", http.HandlerFunc(servePage("Not authorized")))
	mux.Handle("GET /dashboard", anySession(http.HandlerFunc(servePage("Dashboard"))))
	mux.Handle("GET /complete-profile", anySession(http.HandlerFunc(servePage("Complete your profile"))))
	mux.Handle("GET /properties", homeownerOnly(http.HandlerFunc(servePage("Properties"))))
	mux.Handle("GET /reports", reportRoles(http.HandlerFunc(servePage("Damage reports"))))
	mux.Handle("GET /review", adjusterOnly(http.HandlerFunc(servePage("Review queue"))))
	mux.Handle("GET /messages", completeProfile(http.HandlerFunc(servePage("Messages"))))
}

func registerProfileRoutes(mux *http.ServeMux, h *ProfileHandlers, policy ports.AccessPolicy) {
	anySession := RequireAccess(policy, RouteRequirement{})
	mux.Handle("GET /api/profile", anySession(http.HandlerFunc(h.Get)))
	mux.Handle("POST /api/profile/complete", anySession(http.HandlerFunc(h.Complete)))
}

func registerPropertyRoutes(mux *http.ServeMux, h *PropertyHandlers, policy ports.AccessPolicy) {
	homeowner := RequireAccess(policy, RouteRequirement{
		Roles:           []domainauth.Role{domainauth.RoleHomeowner, domainauth.RoleAdmin},
		CompleteProfile: true,
	})
	mux.Handle("POST /api/properties", homeowner(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/properties", homeowner(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/properties/{id}", homeowner(http.HandlerFunc(h.Get)))
	mux.Handle("PATCH /api/properties/{id}", homeowner(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/properties/{id}", homeowner(http.HandlerFunc(h.Delete)))
}

func registerReportRoutes(mux *http.ServeMux, h *ReportHandlers, policy ports.AccessPolicy) {
	creators := RequireAccess(policy, RouteRequirement{
		Roles:           []domainauth.Role{domainauth.RoleHomeowner, domainauth.RoleContractor, domainauth.RoleAdmin},
		CompleteProfile: true,
	})
	participants := RequireAccess(policy, RouteRequirement{CompleteProfile: true})
	reviewers := RequireAccess(policy, RouteRequirement{
		Roles:           []domainauth.Role{domainauth.RoleAdjuster, domainauth.RoleAdmin},
		CompleteProfile: true,
	})

	mux.Handle("POST /api/reports", creators(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/reports", participants(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/reports/{id}", participants(http.HandlerFunc(h.Get)))
	mux.Handle("PATCH /api/reports/{id}", creators(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/reports/{id}", creators(http.HandlerFunc(h.Delete)))
	mux.Handle("POST /api/reports/{id}/submit", creators(http.HandlerFunc(h.Submit)))
	mux.Handle("POST /api/reports/{id}/review", reviewers(http.HandlerFunc(h.StartReview)))
	mux.Handle("POST /api/reports/{id}/close", reviewers(http.HandlerFunc(h.Close)))
}

func registerMessageRoutes(mux *http.ServeMux, h *MessageHandlers, policy ports.AccessPolicy) {
	participants := RequireAccess(policy, RouteRequirement{CompleteProfile: true})
	mux.Handle("POST /api/messages", participants(http.HandlerFunc(h.Send)))
	mux.Handle("GET /api/messages/{userID}", participants(http.HandlerFunc(h.Conversation)))
	mux.Handle("POST /api/messages/{id}/read", participants(http.HandlerFunc(h.MarkRead)))
}

// servePage returns a handler emitting the minimal HTML shell for the given
// page title. The front-end hydrates everything else through the API.
func servePage(title string) http.HandlerFunc {
	body := fmt.Sprintf(
		`<!doctype html><html lang="en"><head><meta charset="utf-8"><title>%s</title></head><body><div id="app"></div></body></html>`,
		title,
	)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, body); err != nil {
			return
		}
	}
}
