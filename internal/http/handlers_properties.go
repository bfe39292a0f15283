package httpx

import (
	"errors"
	"net/http"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/service"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// PropertyHandlers provides HTTP handlers for property operations.
type PropertyHandlers struct {
	Svc *service.PropertyService
}

// Create handles HTTP requests to register a new property owned by the caller.
// POST /api/properties.
func (h *PropertyHandlers) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req model.CreatePropertyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	property, err := h.Svc.Create(r.Context(), actor, req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, property)
}

// Get handles HTTP requests to fetch a single property.
// GET /api/properties/{id}.
func (h *PropertyHandlers) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_id", Err: errors.New("property id is required")})
		return
	}

	property, err := h.Svc.Get(r.Context(), actor, id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, property)
}

// List handles HTTP requests to list properties visible to the caller.
// GET /api/properties?limit=&offset=&q=&sort=&dir=.
func (h *PropertyHandlers) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)
	sort, dir := ParseSortParam(q, "sort", "dir")

	opts := model.PropertiesListOptions{
		Limit:   limit,
		Offset:  offset,
		OwnerID: optionalQuery(q, "owner_id"),
		Q:       optionalQuery(q, "q"),
		Sort:    sort,
		Dir:     dir,
	}

	properties, err := h.Svc.List(r.Context(), actor, opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"properties": properties})
}

// Update handles HTTP requests to modify a property.
// PATCH /api/properties/{id}.
func (h *PropertyHandlers) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	var req model.UpdatePropertyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	property, err := h.Svc.Update(r.Context(), actor, id, req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, property)
}

// Delete handles HTTP requests to remove a property.
// DELETE /api/properties/{id}.
func (h *PropertyHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("property not found")})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
