//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxReportTitleLen = 255

// ReportStatus tracks a damage report through its assessment lifecycle.
type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "draft"
	ReportStatusSubmitted ReportStatus = "submitted"
	ReportStatusInReview  ReportStatus = "in_review"
	ReportStatusClosed    ReportStatus = "closed"
)

// Valid reports whether the report status is supported.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusDraft, ReportStatusSubmitted, ReportStatusInReview, ReportStatusClosed:
		return true
	default:
		return false
	}
}

// ParseReportStatus normalizes a status string and reports whether it is supported.
func ParseReportStatus(value string) (ReportStatus, bool) {
	status := ReportStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// Report is a property-damage assessment report. CreatorID is the auth-service
// user id of the homeowner or contractor who filed it; AdjusterID is set once
// an adjuster takes the report into review.
type Report struct {
	ID           string       `json:"id"            db:"id"`
	PropertyID   string       `json:"property_id"   db:"property_id"`
	CreatorID    string       `json:"creator_id"    db:"creator_id"`
	AdjusterID   *string      `json:"adjuster_id,omitempty" db:"adjuster_id"`
	Title        string       `json:"title"         db:"title"`
	Description  *string      `json:"description,omitempty" db:"description"`
	Status       ReportStatus `json:"status"        db:"status"`
	IncidentDate *time.Time   `json:"incident_date,omitempty" db:"incident_date"`
	CreatedAt    time.Time    `json:"created_at"    db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"    db:"updated_at"`
}

// ReportsListOptions controls paging and filtering for listing reports.
type ReportsListOptions struct {
	Limit      int
	Offset     int
	PropertyID *string
	CreatorID  *string
	Status     *ReportStatus
	Q          *string // substring match on title (ILIKE)
	Sort       string  // allowed: "created_at", "title", "status"
	Dir        string  // allowed: "asc", "desc"
}

// CreateReportRequest represents parameters to file a Report.
type CreateReportRequest struct {
	PropertyID   string     `json:"property_id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	IncidentDate *time.Time `json:"incident_date,omitempty"`
}

// UpdateReportRequest represents parameters to update a Report.
type UpdateReportRequest struct {
	Title        *string       `json:"title,omitempty"`
	Description  *string       `json:"description,omitempty"`
	Status       *ReportStatus `json:"status,omitempty"`
	AdjusterID   *string       `json:"adjuster_id,omitempty"`
	IncidentDate *time.Time    `json:"incident_date,omitempty"`
}

// Validate validates CreateReportRequest.
func (r *CreateReportRequest) Validate() error {
	if strings.TrimSpace(r.PropertyID) == "" {
		return errors.New("property_id is required")
	}
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxReportTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if r.IncidentDate != nil && r.IncidentDate.After(time.Now().Add(24*time.Hour)) {
		return errors.New("incident_date cannot be in the future")
	}
	return nil
}

// Validate validates UpdateReportRequest.
func (r *UpdateReportRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title cannot be empty")
	}
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateReportRequest.
func (r *UpdateReportRequest) HasUpdates() bool {
	return r.Title != nil || r.Description != nil || r.Status != nil || r.AdjusterID != nil || r.IncidentDate != nil
}
