// Package httpx provides HTTP handlers and utilities for the SureSight API.
package httpx

import (
	"net/http"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/service"
)

// actorFromRequest builds the service-layer actor from the verified session in
// context. The false return means no session was present and a 401 was written.
func actorFromRequest(w http.ResponseWriter, r *http.Request) (service.Actor, bool) {
	session, ok := sessionOrError(w, r)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: session.UserID, Role: session.Role}, true
}

// ProfileHandlers provides HTTP handlers for role-profile operations.
type ProfileHandlers struct {
	Svc *service.ProfileService
}

// Get returns the caller's own profile.
// GET /api/profile.
func (h *ProfileHandlers) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	profile, err := h.Svc.Get(r.Context(), actor.UserID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}

// Complete records the caller's role details and marks the profile complete.
// POST /api/profile/complete.
func (h *ProfileHandlers) Complete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req model.CompleteProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	profile, err := h.Svc.Complete(r.Context(), actor.UserID, req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}
