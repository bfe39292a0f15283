package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/auth"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/mocks"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/service"
)

func newReportHandlers(reports *mocks.MockReportRepository, properties *mocks.MockPropertyRepository) *ReportHandlers {
	return &ReportHandlers{Svc: service.NewReportService(service.ReportServiceOptions{
		Reports:    reports,
		Properties: properties,
	})}
}

func TestReportHandlers_Create(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	reports := mocks.NewMockReportRepository(ctrl)
	properties := mocks.NewMockPropertyRepository(ctrl)

	properties.EXPECT().GetByID(gomock.Any(), "prop-1").Return(&model.Property{
		ID:      "prop-1",
		OwnerID: "auth-1",
	}, nil)
	reports.EXPECT().
		Create(gomock.Any(), "auth-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, creatorID string, req model.CreateReportRequest) (*model.Report, error) {
			return &model.Report{
				ID:         "rep-1",
				PropertyID: req.PropertyID,
				CreatorID:  creatorID,
				Title:      req.Title,
				Status:     model.ReportStatusDraft,
			}, nil
		})

	body := `{"property_id":"prop-1","title":"Hail damage to roof"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(body)), domainauth.RoleHomeowner)
	w := httptest.NewRecorder()

	newReportHandlers(reports, properties).Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var report model.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "rep-1", report.ID)
	assert.Equal(t, model.ReportStatusDraft, report.Status)
}

func TestReportHandlers_Create_ForeignPropertyForbidden(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	reports := mocks.NewMockReportRepository(ctrl)
	properties := mocks.NewMockPropertyRepository(ctrl)

	properties.EXPECT().GetByID(gomock.Any(), "prop-2").Return(&model.Property{
		ID:      "prop-2",
		OwnerID: "auth-other",
	}, nil)

	body := `{"property_id":"prop-2","title":"Hail damage to roof"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(body)), domainauth.RoleHomeowner)
	w := httptest.NewRecorder()

	newReportHandlers(reports, properties).Create(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReportHandlers_Submit(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	reports := mocks.NewMockReportRepository(ctrl)
	properties := mocks.NewMockPropertyRepository(ctrl)

	reports.EXPECT().GetByID(gomock.Any(), "rep-1").Return(&model.Report{
		ID:        "rep-1",
		CreatorID: "auth-1",
		Status:    model.ReportStatusDraft,
	}, nil)
	reports.EXPECT().
		Update(gomock.Any(), "rep-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, req model.UpdateReportRequest) (*model.Report, error) {
			require.NotNil(t, req.Status)
			assert.Equal(t, model.ReportStatusSubmitted, *req.Status)
			return &model.Report{ID: id, CreatorID: "auth-1", Status: *req.Status}, nil
		})

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/reports/rep-1/submit", nil), domainauth.RoleHomeowner)
	req.SetPathValue("id", "rep-1")
	w := httptest.NewRecorder()

	newReportHandlers(reports, properties).Submit(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"submitted"`)
}

func TestReportHandlers_Submit_NotDraftConflict(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	reports := mocks.NewMockReportRepository(ctrl)
	properties := mocks.NewMockPropertyRepository(ctrl)

	reports.EXPECT().GetByID(gomock.Any(), "rep-1").Return(&model.Report{
		ID:        "rep-1",
		CreatorID: "auth-1",
		Status:    model.ReportStatusClosed,
	}, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/reports/rep-1/submit", nil), domainauth.RoleHomeowner)
	req.SetPathValue("id", "rep-1")
	w := httptest.NewRecorder()

	newReportHandlers(reports, properties).Submit(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "conflict")
}

func TestReportHandlers_StartReview_RequiresAdjuster(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	reports := mocks.NewMockReportRepository(ctrl)
	properties := mocks.NewMockPropertyRepository(ctrl)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/reports/rep-1/review", nil), domainauth.RoleContractor)
	req.SetPathValue("id", "rep-1")
	w := httptest.NewRecorder()

	newReportHandlers(reports, properties).StartReview(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReportHandlers_List_FiltersByStatus(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	reports := mocks.NewMockReportRepository(ctrl)
	properties := mocks.NewMockPropertyRepository(ctrl)

	reports.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts model.ReportsListOptions) ([]*model.Report, error) {
			require.NotNil(t, opts.Status)
			assert.Equal(t, model.ReportStatusSubmitted, *opts.Status)
			return []*model.Report{{ID: "rep-1", Status: model.ReportStatusSubmitted}}, nil
		})

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/reports?status=submitted", nil), domainauth.RoleAdjuster)
	w := httptest.NewRecorder()

	newReportHandlers(reports, properties).List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReportHandlers_List_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	reports := mocks.NewMockReportRepository(ctrl)
	properties := mocks.NewMockPropertyRepository(ctrl)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/reports?status=bogus", nil), domainauth.RoleAdjuster)
	w := httptest.NewRecorder()

	newReportHandlers(reports, properties).List(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_status")
}
