package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/auth"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/ports"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RouteRequirement declares what a protected route demands of the caller.
// The zero value means "any authenticated session".
type RouteRequirement struct {
	Roles           []domainauth.Role
	CompleteProfile bool
}

// RequireAccess returns a middleware that delegates the access decision to the
// injected policy. Browser requests that fail the check get a 303 redirect to
// the policy's target; API requests get a JSON error with a matching status.
// The verified session, when present, is placed in the request context.
func RequireAccess(policy ports.AccessPolicy, req RouteRequirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := policy.Check(r.Context(), ports.AccessCheckInput{
				SessionID:              sessionIDFromRequest(r),
				CurrentPath:            r.URL.RequestURI(),
				RequiredRoles:          req.Roles,
				RequireCompleteProfile: req.CompleteProfile,
			})

			if !decision.Authorized {
				denyAccess(w, r, decision.RedirectTo)
				return
			}

			ctx := SetSessionInContext(r.Context(), decision.Session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionIDFromRequest extracts the opaque session id from the request cookie.
func sessionIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// denyAccess renders a failed access decision: a redirect for browsers, a JSON
// error for API clients.
func denyAccess(w http.ResponseWriter, r *http.Request, redirectTo string) {
	if redirectTo == "" {
		redirectTo = "/login"
	}
	if IsBrowserRequest(r) {
		http.Redirect(w, r, redirectTo, http.StatusSeeOther)
		return
	}

	code := http.StatusUnauthorized
	errCode := "authentication_required"
	if strings.HasPrefix(redirectTo, "/unauthorized") {
		code = http.StatusForbidden
		errCode = "insufficient_permissions"
	}
	WriteJSON(w, code, map[string]string{
		"error":       errCode,
		"redirect_to": redirectTo,
	})
}

// browserRequestKey is an unexported context key type for browser request detection.
type browserRequestKey struct{}

// BrowserDetection returns a middleware that detects browser requests vs API requests.
// It sets a context value that can be used by downstream handlers to determine
// whether to redirect or return JSON.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isBrowser := isBrowserRequest(r)
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest returns true if the current request is from a browser.
func IsBrowserRequest(r *http.Request) bool {
	if val := r.Context().Value(browserRequestKey{}); val != nil {
		if isBrowser, ok := val.(bool); ok {
			return isBrowser
		}
	}
	// Fallback to direct detection if middleware wasn't used
	return isBrowserRequest(r)
}

// isBrowserRequest determines if a request is from a browser based on the path
// prefix and the Accept header. API routes are never treated as browser
// requests regardless of headers.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}

	accept := r.Header.Get("Accept")
	if accept == "" {
		// No Accept header, assume browser for non-API routes
		return true
	}
	return strings.Contains(accept, "text/html")
}

var errNoSession = errors.New("no session in context")

// sessionOrError returns the context session or writes a 401.
func sessionOrError(w http.ResponseWriter, r *http.Request) (*domainauth.Session, bool) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errNoSession})
		return nil, false
	}
	return session, true
}
