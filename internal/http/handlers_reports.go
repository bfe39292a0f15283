package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/service"
)

// ReportHandlers provides HTTP handlers for damage-report operations.
type ReportHandlers struct {
	Svc *service.ReportService
}

// Create handles HTTP requests to file a new damage report.
// POST /api/reports.
func (h *ReportHandlers) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req model.CreateReportRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	report, err := h.Svc.Create(r.Context(), actor, req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, report)
}

// Get handles HTTP requests to fetch a single report.
// GET /api/reports/{id}.
func (h *ReportHandlers) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_id", Err: errors.New("report id is required")})
		return
	}

	report, err := h.Svc.Get(r.Context(), actor, id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

// List handles HTTP requests to list reports visible to the caller.
// GET /api/reports?limit=&offset=&property_id=&status=&q=&sort=&dir=.
func (h *ReportHandlers) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)
	sort, dir := ParseSortParam(q, "sort", "dir")

	opts := model.ReportsListOptions{
		Limit:      limit,
		Offset:     offset,
		PropertyID: optionalQuery(q, "property_id"),
		CreatorID:  optionalQuery(q, "creator_id"),
		Q:          optionalQuery(q, "q"),
		Sort:       sort,
		Dir:        dir,
	}

	if raw := q.Get("status"); raw != "" {
		status, valid := model.ParseReportStatus(raw)
		if !valid {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_status", Err: errors.New("unsupported report status filter")})
			return
		}
		opts.Status = &status
	}

	reports, err := h.Svc.List(r.Context(), actor, opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

// Update handles HTTP requests to edit a draft report's content fields.
// PATCH /api/reports/{id}.
func (h *ReportHandlers) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	var req model.UpdateReportRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	report, err := h.Svc.Update(r.Context(), actor, id, req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

// Submit handles HTTP requests to move a draft report into the review queue.
// POST /api/reports/{id}/submit.
func (h *ReportHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.Svc.Submit)
}

// StartReview handles HTTP requests for an adjuster to claim a submitted report.
// POST /api/reports/{id}/review.
func (h *ReportHandlers) StartReview(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.Svc.StartReview)
}

// Close handles HTTP requests to close a report under review.
// POST /api/reports/{id}/close.
func (h *ReportHandlers) Close(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.Svc.Close)
}

// lifecycle runs one of the status-transition operations against the path id.
func (h *ReportHandlers) lifecycle(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, actor service.Actor, id string) (*model.Report, error)) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	report, err := op(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

// Delete handles HTTP requests to discard a draft report.
// DELETE /api/reports/{id}.
func (h *ReportHandlers) Delete(w http.ResponseWriter, r *http.Request) {
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
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("report not found")})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
