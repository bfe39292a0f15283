package service

import (
	"context"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/core"
	domainauth "github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/auth"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
	apperrors "github.com/UNO-CSCI4830/SureSight-sub001/internal/errors"
)

// ReportServiceOptions groups dependencies for ReportService.
type ReportServiceOptions struct {
	Reports    core.ReportRepository
	Properties core.PropertyRepository
}

// ReportService manages damage reports and their assessment lifecycle.
type ReportService struct {
	reports    core.ReportRepository
	properties core.PropertyRepository
}

// NewReportService constructs a new ReportService.
func NewReportService(opts ReportServiceOptions) *ReportService {
	return &ReportService{reports: opts.Reports, properties: opts.Properties}
}

// Create files a report. Homeowners may only file against their own
// properties; contractors and privileged roles may file against any.
func (s *ReportService) Create(ctx context.Context, actor Actor, req model.CreateReportRequest) (*model.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	property, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if actor.Role.Matches(domainauth.RoleHomeowner) && property.OwnerID != actor.UserID {
		return nil, apperrors.Forbidden("property belongs to another user")
	}
	return s.reports.Create(ctx, actor.UserID, req)
}

// Get retrieves a report visible to the actor: its creator, the property
// owner, or any privileged role.
func (s *ReportService) Get(ctx context.Context, actor Actor, id string) (*model.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkVisibility(ctx, actor, report); err != nil {
		return nil, err
	}
	return report, nil
}

// List returns reports visible to the actor. Non-privileged actors are scoped
// to reports they created.
func (s *ReportService) List(ctx context.Context, actor Actor, opts model.ReportsListOptions) ([]*model.Report, error) {
	if !actor.isPrivileged() {
		opts.CreatorID = &actor.UserID
	}
	return s.reports.List(ctx, opts)
}

// Update edits report details. Only the creator may edit, and only drafts.
func (s *ReportService) Update(ctx context.Context, actor Actor, id string, req model.UpdateReportRequest) (*model.Report, error) {
	if req.Status != nil || req.AdjusterID != nil {
		return nil, apperrors.Validation("status changes go through the lifecycle operations")
	}
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.CreatorID != actor.UserID {
		return nil, apperrors.Forbidden("only the report creator can edit it")
	}
	if report.Status != model.ReportStatusDraft {
		return nil, apperrors.Conflict("only draft reports can be edited")
	}
	return s.reports.Update(ctx, id, req)
}

// Submit moves a draft to submitted. Creator only.
func (s *ReportService) Submit(ctx context.Context, actor Actor, id string) (*model.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.CreatorID != actor.UserID {
		return nil, apperrors.Forbidden("only the report creator can submit it")
	}
	if report.Status != model.ReportStatusDraft {
		return nil, apperrors.Conflict("report is not a draft")
	}
	status := model.ReportStatusSubmitted
	return s.reports.Update(ctx, id, model.UpdateReportRequest{Status: &status})
}

// StartReview moves a submitted report into review and assigns the adjuster.
func (s *ReportService) StartReview(ctx context.Context, actor Actor, id string) (*model.Report, error) {
	if !actor.Role.Matches(domainauth.RoleAdjuster) && !actor.Role.Matches(domainauth.RoleAdmin) {
		return nil, apperrors.Forbidden("only adjusters review reports")
	}
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.Status != model.ReportStatusSubmitted {
		return nil, apperrors.Conflict("report has not been submitted")
	}
	status := model.ReportStatusInReview
	return s.reports.Update(ctx, id, model.UpdateReportRequest{
		Status:     &status,
		AdjusterID: &actor.UserID,
	})
}

// Close finishes a review. Only the assigned adjuster or an admin may close.
func (s *ReportService) Close(ctx context.Context, actor Actor, id string) (*model.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	assigned := report.AdjusterID != nil && *report.AdjusterID == actor.UserID
	if !assigned && !actor.Role.Matches(domainauth.RoleAdmin) {
		return nil, apperrors.Forbidden("only the assigned adjuster can close this report")
	}
	if report.Status != model.ReportStatusInReview {
		return nil, apperrors.Conflict("report is not in review")
	}
	status := model.ReportStatusClosed
	return s.reports.Update(ctx, id, model.UpdateReportRequest{Status: &status})
}

// Delete removes a draft report. Creator or admin only.
func (s *ReportService) Delete(ctx context.Context, actor Actor, id string) (bool, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if report.CreatorID != actor.UserID && !actor.Role.Matches(domainauth.RoleAdmin) {
		return false, apperrors.Forbidden("only the report creator can delete it")
	}
	if report.Status != model.ReportStatusDraft {
		return false, apperrors.Conflict("only draft reports can be deleted")
	}
	return s.reports.Delete(ctx, id)
}

func (s *ReportService) checkVisibility(ctx context.Context, actor Actor, report *model.Report) error {
	if actor.isPrivileged() || report.CreatorID == actor.UserID {
		return nil
	}
	property, err := s.properties.GetByID(ctx, report.PropertyID)
	if err == nil && property.OwnerID == actor.UserID {
		return nil
	}
	return apperrors.Forbidden("report belongs to another user")
}
