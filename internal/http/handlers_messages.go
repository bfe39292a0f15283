package httpx

import (
	"errors"
	"net/http"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/service"
)

// MessageHandlers provides HTTP handlers for direct messaging.
type MessageHandlers struct {
	Svc *service.MessageService
}

// Send handles HTTP requests to deliver a message.
// POST /api/messages.
func (h *MessageHandlers) Send(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req model.SendMessageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	message, err := h.Svc.Send(r.Context(), actor, req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, message)
}

// Conversation handles HTTP requests to list the exchange with another user.
// GET /api/messages/{userID}?limit=&offset=&report_id=&unread_only=&newest_first=.
func (h *MessageHandlers) Conversation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	otherUserID := r.PathValue("userID")
	if otherUserID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_user", Err: errors.New("conversation partner id is required")})
		return
	}

	q := r.URL.Query()
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)

	opts := model.MessagesListOptions{
		Limit:       limit,
		Offset:      offset,
		ReportID:    optionalQuery(q, "report_id"),
		UnreadOnly:  q.Get("unread_only") == "true",
		NewestFirst: q.Get("newest_first") == "true",
	}

	messages, err := h.Svc.Conversation(r.Context(), actor, otherUserID, opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// MarkRead handles HTTP requests to mark a received message as read.
// POST /api/messages/{id}/read.
func (h *MessageHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	marked, err := h.Svc.MarkRead(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if !marked {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("message not found or already read")})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
