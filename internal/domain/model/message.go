//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxMessageBodyLen = 4000

// Message is a direct message between two users, optionally attached to a report.
type Message struct {
	ID          string     `json:"id"           db:"id"`
	SenderID    string     `json:"sender_id"    db:"sender_id"`
	RecipientID string     `json:"recipient_id" db:"recipient_id"`
	ReportID    *string    `json:"report_id,omitempty" db:"report_id"`
	Body        string     `json:"body"         db:"body"`
	ReadAt      *time.Time `json:"read_at,omitempty" db:"read_at"`
	CreatedAt   time.Time  `json:"created_at"   db:"created_at"`
}

// MessagesListOptions controls paging for listing a conversation.
// Both participant ids are required; messages in either direction are returned.
type MessagesListOptions struct {
	Limit       int
	Offset      int
	UserID      string
	OtherUserID string
	ReportID    *string
	UnreadOnly  bool
	NewestFirst bool
}

// SendMessageRequest represents parameters to send a Message.
type SendMessageRequest struct {
	RecipientID string  `json:"recipient_id"`
	ReportID    *string `json:"report_id,omitempty"`
	Body        string  `json:"body"`
}

// Validate validates SendMessageRequest.
func (r *SendMessageRequest) Validate() error {
	if strings.TrimSpace(r.RecipientID) == "" {
		return errors.New("recipient_id is required")
	}
	body := strings.TrimSpace(r.Body)
	if body == "" {
		return errors.New("body is required and cannot be empty")
	}
	if utf8.RuneCountInString(body) > maxMessageBodyLen {
		return errors.New("body cannot exceed 4000 characters")
	}
	return nil
}
