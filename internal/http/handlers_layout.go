package httpx

import (
	"net/http"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/service"
)

// LayoutHandlers serves the shell data every authenticated page needs: the
// display name and the best-effort resolved role driving navigation visibility.
type LayoutHandlers struct {
	Sessions service.SessionSource
	Resolver *service.RoleResolver
}

// Layout returns the navigation context for the current session.
// GET /api/layout.
//
// The endpoint never fails on role-resolution problems; an unresolved role
// simply renders the signed-in-but-roleless navigation state.
func (h *LayoutHandlers) Layout(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(SessionCookie)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Sessions.GetSession(r.Context(), sessionCookie.Value)
	if err != nil || session == nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	resolution := h.Resolver.Resolve(r.Context(), session)

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":         session.UserID,
			"first_name": session.FirstName,
			"last_name":  session.LastName,
			"email":      session.Email,
		},
		"role":         resolution.Role,
		"role_source":  resolution.Source,
		"role_outcome": string(resolution.Outcome),
	})
}
