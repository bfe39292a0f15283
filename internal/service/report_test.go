package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/auth"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
	apperrors "github.com/UNO-CSCI4830/SureSight-sub001/internal/errors"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/mocks"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/testutil"
)

func adjusterActor() Actor {
	return Actor{UserID: "auth-adj", Role: domainauth.RoleAdjuster}
}

func contractorActor() Actor {
	return Actor{UserID: "auth-con", Role: domainauth.RoleContractor}
}

func TestReportService_Create_HomeownerOwnProperty(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := testutil.NewReportRequest("prop-1").Build()

	properties := mocks.NewMockPropertyRepository(ctrl)
	properties.EXPECT().
		GetByID(gomock.Any(), "prop-1").
		Return(&model.Property{ID: "prop-1", OwnerID: "auth-owner"}, nil)

	reports := mocks.NewMockReportRepository(ctrl)
	reports.EXPECT().
		Create(gomock.Any(), "auth-owner", req).
		Return(&model.Report{ID: "rep-1", Status: model.ReportStatusDraft}, nil)

	svc := NewReportService(ReportServiceOptions{Reports: reports, Properties: properties})

	got, err := svc.Create(context.Background(), homeownerActor(), req)
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusDraft, got.Status)
}

func TestReportService_Create_HomeownerForeignPropertyForbidden(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	properties := mocks.NewMockPropertyRepository(ctrl)
	properties.EXPECT().
		GetByID(gomock.Any(), "prop-1").
		Return(&model.Property{ID: "prop-1", OwnerID: "someone-else"}, nil)

	reports := mocks.NewMockReportRepository(ctrl)

	svc := NewReportService(ReportServiceOptions{Reports: reports, Properties: properties})

	_, err := svc.Create(context.Background(), homeownerActor(), testutil.NewReportRequest("prop-1").Build())
	assertAppErrorCode(t, err, apperrors.ErrCodeForbidden)
}

func TestReportService_Create_ContractorAnyProperty(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := testutil.NewReportRequest("prop-1").Build()

	properties := mocks.NewMockPropertyRepository(ctrl)
	properties.EXPECT().
		GetByID(gomock.Any(), "prop-1").
		Return(&model.Property{ID: "prop-1", OwnerID: "someone-else"}, nil)

	reports := mocks.NewMockReportRepository(ctrl)
	reports.EXPECT().
		Create(gomock.Any(), "auth-con", req).
		Return(&model.Report{ID: "rep-1"}, nil)

	svc := NewReportService(ReportServiceOptions{Reports: reports, Properties: properties})

	_, err := svc.Create(context.Background(), contractorActor(), req)
	require.NoError(t, err)
}

func TestReportService_Get_PropertyOwnerSeesReport(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reports := mocks.NewMockReportRepository(ctrl)
	reports.EXPECT().
		GetByID(gomock.Any(), "rep-1").
		Return(&model.Report{ID: "rep-1", PropertyID: "prop-1", CreatorID: "auth-con"}, nil)

	properties := mocks.NewMockPropertyRepository(ctrl)
	properties.EXPECT().
		GetByID(gomock.Any(), "prop-1").
		Return(&model.Property{ID: "prop-1", OwnerID: "auth-owner"}, nil)

	svc := NewReportService(ReportServiceOptions{Reports: reports, Properties: properties})

	got, err := svc.Get(context.Background(), homeownerActor(), "rep-1")
	require.NoError(t, err)
	assert.Equal(t, "rep-1", got.ID)
}

func TestReportService_Get_UnrelatedUserForbidden(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reports := mocks.NewMockReportRepository(ctrl)
	reports.EXPECT().
		GetByID(gomock.Any(), "rep-1").
		Return(&model.Report{ID: "rep-1", PropertyID: "prop-1", CreatorID: "auth-con"}, nil)

	properties := mocks.NewMockPropertyRepository(ctrl)
	properties.EXPECT().
		GetByID(gomock.Any(), "prop-1").
		Return(&model.Property{ID: "prop-1", OwnerID: "someone-else"}, nil)

	svc := NewReportService(ReportServiceOptions{Reports: reports, Properties: properties})

	_, err := svc.Get(context.Background(), homeownerActor(), "rep-1")
	assertAppErrorCode(t, err, apperrors.ErrCodeForbidden)
}

func TestReportService_List_ScopesNonPrivilegedToCreator(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reports := mocks.NewMockReportRepository(ctrl)
	reports.EXPECT().
		List(gomock.Any(), gomock.AssignableToTypeOf(model.ReportsListOptions{})).
		DoAndReturn(func(_ context.Context, opts model.ReportsListOptions) ([]*model.Report, error) {
			require.NotNil(t, opts.CreatorID)
			assert.Equal(t, "auth-con", *opts.CreatorID)
			return []*model.Report{}, nil
		})

	svc := NewReportService(ReportServiceOptions{Reports: reports})

	_, err := svc.List(context.Background(), contractorActor(), model.ReportsListOptions{})
	require.NoError(t, err)
}

func TestReportService_Update_RejectsStatusChanges(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reports := mocks.NewMockReportRepository(ctrl)
	svc := NewReportService(ReportServiceOptions{Reports: reports})

	status := model.ReportStatusClosed
	_, err := svc.Update(context.Background(), contractorActor(), "rep-1", model.UpdateReportRequest{Status: &status})
	assertAppErrorCode(t, err, apperrors.ErrCodeValidation)
}

func TestReportService_Update_OnlyDrafts(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reports := mocks.NewMockReportRepository(ctrl)
	reports.EXPECT().
		GetByID(gomock.Any(), "rep-1").
		Return(&model.Report{ID: "rep-1", CreatorID: "auth-con", Status: model.ReportStatusSubmitted}, nil)

	svc := NewReportService(ReportServiceOptions{Reports: reports})

	title := "Updated title"
	_, err := svc.Update(context.Background(), contractorActor(), "rep-1", model.UpdateReportRequest{Title: &title})
	assertAppErrorCode(t, err, apperrors.ErrCodeConflict)
}

func TestReportService_Submit(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reports := mocks.NewMockReportRepository(ctrl)
	reports.EXPECT().
		GetByID(gomock.Any(), "rep-1").
		Return(&model.Report{ID: "rep-1", CreatorID: "auth-con", Status: model.ReportStatusDraft}, nil)
	reports.EXPECT().
		Update(gomock.Any(), "rep-1", gomock.AssignableToTypeOf(model.UpdateReportRequest{})).
		DoAndReturn(func(_ context.Context, _ string, req model.UpdateReportRequest) (*model.Report, error) {
			require.NotNil(t, req.Status)
			assert.Equal(t, model.ReportStatusSubmitted, *req.Status)
			return &model.Report{ID: "rep-1", Status: *req.Status}, nil
		})

	svc := NewReportService(ReportServiceOptions{Reports: reports})

	got, err := svc.Submit(context.Background(), contractorActor(), "rep-1")
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusSubmitted, got.Status)
}

func TestReportService_Submit_NotCreatorForbidden(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reports := mocks.NewMockReportRepository(ctrl)
	reports.EXPECT().
		GetByID(gomock.Any(), "rep-1").
		Return(&model.Report{ID: "rep-1", CreatorID: "someone-else", Status: model.ReportStatusDraft}, nil)

	svc := NewReportService(ReportServiceOptions{Reports: reports})

	_, err := svc.Submit(context.Background(), contractorActor(), "rep-1")
	assertAppErrorCode(t, err, apperrors.ErrCodeForbidden)
}

func TestReportService_StartReview_AssignsAdjuster(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reports := mocks.NewMockReportRepository(ctrl)
	reports.EXPECT().
		GetByID(gomock.Any(), "rep-1").
		Return(&model.Report{ID: "rep-1", Status: model.ReportStatusSubmitted}, nil)
	reports.EXPECT().
		Update(gomock.Any(), "rep-1", gomock.AssignableToTypeOf(model.UpdateReportRequest{})).
		DoAndReturn(func(_ context.Context, _ string, req model.UpdateReportRequest) (*model.Report, error) {
			require.NotNil(t, req.Status)
			assert.Equal(t, model.ReportStatusInReview, *req.Status)
			require.NotNil(t, req.AdjusterID)
			assert.Equal(t, "auth-adj", *req.AdjusterID)
			return &model.Report{ID: "rep-1", Status: *req.Status, AdjusterID: req.AdjusterID}, nil
		})

	svc := NewReportService(ReportServiceOptions{Reports: reports})

	got, err := svc.StartReview(context.Background(), adjusterActor(), "rep-1")
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusInReview, got.Status)
}

func TestReportService_StartReview_NonAdjusterForbidden(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reports := mocks.NewMockReportRepository(ctrl)
	svc := NewReportService(ReportServiceOptions{Reports: reports})

	_, err := svc.StartReview(context.Background(), contractorActor(), "rep-1")
	assertAppErrorCode(t, err, apperrors.ErrCodeForbidden)
}

func TestReportService_StartReview_NotSubmittedConflict(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reports := mocks.NewMockReportRepository(ctrl)
	reports.EXPECT().
		GetByID(gomock.Any(), "rep-1").
		Return(&model.Report{ID: "rep-1", Status: model.ReportStatusDraft}, nil)

	svc := NewReportService(ReportServiceOptions{Reports: reports})

	_, err := svc.StartReview(context.Background(), adjusterActor(), "rep-1")
	assertAppErrorCode(t, err, apperrors.ErrCodeConflict)
}

func TestReportService_Close_AssignedAdjuster(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adj := "auth-adj"
	reports := mocks.NewMockReportRepository(ctrl)
	reports.EXPECT().
		GetByID(gomock.Any(), "rep-1").
		Return(&model.Report{ID: "rep-1", Status: model.ReportStatusInReview, AdjusterID: &adj}, nil)
	reports.EXPECT().
		Update(gomock.Any(), "rep-1", gomock.AssignableToTypeOf(model.UpdateReportRequest{})).
		DoAndReturn(func(_ context.Context, _ string, req model.UpdateReportRequest) (*model.Report, error) {
			require.NotNil(t, req.Status)
			assert.Equal(t, model.ReportStatusClosed, *req.Status)
			return &model.Report{ID: "rep-1", Status: *req.Status}, nil
		})

	svc := NewReportService(ReportServiceOptions{Reports: reports})

	got, err := svc.Close(context.Background(), adjusterActor(), "rep-1")
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusClosed, got.Status)
}

func TestReportService_Close_UnassignedAdjusterForbidden(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	other := "other-adjuster"
	reports := mocks.NewMockReportRepository(ctrl)
	reports.EXPECT().
		GetByID(gomock.Any(), "rep-1").
		Return(&model.Report{ID: "rep-1", Status: model.ReportStatusInReview, AdjusterID: &other}, nil)

	svc := NewReportService(ReportServiceOptions{Reports: reports})

	_, err := svc.Close(context.Background(), adjusterActor(), "rep-1")
	assertAppErrorCode(t, err, apperrors.ErrCodeForbidden)
}

func TestReportService_Delete_OnlyDrafts(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reports := mocks.NewMockReportRepository(ctrl)
	reports.EXPECT().
		GetByID(gomock.Any(), "rep-1").
		Return(&model.Report{ID: "rep-1", CreatorID: "auth-con", Status: model.ReportStatusClosed}, nil)

	svc := NewReportService(ReportServiceOptions{Reports: reports})

	_, err := svc.Delete(context.Background(), contractorActor(), "rep-1")
	assertAppErrorCode(t, err, apperrors.ErrCodeConflict)
}

func TestReportService_Delete_Draft(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reports := mocks.NewMockReportRepository(ctrl)
	reports.EXPECT().
		GetByID(gomock.Any(), "rep-1").
		Return(&model.Report{ID: "rep-1", CreatorID: "auth-con", Status: model.ReportStatusDraft}, nil)
	reports.EXPECT().Delete(gomock.Any(), "rep-1").Return(true, nil)

	svc := NewReportService(ReportServiceOptions{Reports: reports})

	deleted, err := svc.Delete(context.Background(), contractorActor(), "rep-1")
	require.NoError(t, err)
	assert.True(t, deleted)
}
