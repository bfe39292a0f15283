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

// withSession attaches a verified session to the request context the way
// RequireAccess does for protected routes.
func withSession(req *http.Request, role domainauth.Role) *http.Request {
	session := testSession("sess-1")
	session.Role = role
	return req.WithContext(SetSessionInContext(req.Context(), session))
}

func newPropertyHandlers(repo *mocks.MockPropertyRepository) *PropertyHandlers {
	return &PropertyHandlers{Svc: service.NewPropertyService(service.PropertyServiceOptions{Properties: repo})}
}

func TestPropertyHandlers_Create(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPropertyRepository(ctrl)
	repo.EXPECT().
		Create(gomock.Any(), "auth-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, ownerID string, req model.CreatePropertyRequest) (*model.Property, error) {
			return &model.Property{
				ID:         "prop-1",
				OwnerID:    ownerID,
				Address:    req.Address,
				City:       req.City,
				State:      req.State,
				PostalCode: req.PostalCode,
			}, nil
		})

	body := `{"address":"4912 Dodge St","city":"Omaha","state":"NE","postal_code":"68132"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/properties", strings.NewReader(body)), domainauth.RoleHomeowner)
	w := httptest.NewRecorder()

	newPropertyHandlers(repo).Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var property model.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &property))
	assert.Equal(t, "prop-1", property.ID)
	assert.Equal(t, "auth-1", property.OwnerID)
	assert.Equal(t, "4912 Dodge St", property.Address)
}

func TestPropertyHandlers_Create_NoSession(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPropertyRepository(ctrl)

	body := `{"address":"4912 Dodge St","city":"Omaha","state":"NE","postal_code":"68132"}`
	req := httptest.NewRequest(http.MethodPost, "/api/properties", strings.NewReader(body))
	w := httptest.NewRecorder()

	newPropertyHandlers(repo).Create(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication_required")
}

func TestPropertyHandlers_Create_ValidationError(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPropertyRepository(ctrl)

	body := `{"address":"","city":"Omaha","state":"NE","postal_code":"68132"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/properties", strings.NewReader(body)), domainauth.RoleHomeowner)
	w := httptest.NewRecorder()

	newPropertyHandlers(repo).Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation")
}

func TestPropertyHandlers_Create_MalformedJSON(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPropertyRepository(ctrl)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/properties", strings.NewReader("{not json")), domainauth.RoleHomeowner)
	w := httptest.NewRecorder()

	newPropertyHandlers(repo).Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_json")
}

func TestPropertyHandlers_Get_ForbiddenForForeignProperty(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPropertyRepository(ctrl)
	repo.EXPECT().GetByID(gomock.Any(), "prop-2").Return(&model.Property{
		ID:      "prop-2",
		OwnerID: "auth-other",
	}, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/properties/prop-2", nil), domainauth.RoleHomeowner)
	req.SetPathValue("id", "prop-2")
	w := httptest.NewRecorder()

	newPropertyHandlers(repo).Get(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "forbidden")
}

func TestPropertyHandlers_Get_MissingID(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPropertyRepository(ctrl)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/properties/", nil), domainauth.RoleHomeowner)
	w := httptest.NewRecorder()

	newPropertyHandlers(repo).Get(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing_id")
}

func TestPropertyHandlers_List_PassesQueryFilters(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPropertyRepository(ctrl)
	repo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts model.PropertiesListOptions) ([]*model.Property, error) {
			assert.Equal(t, 25, opts.Limit)
			assert.Equal(t, 50, opts.Offset)
			require.NotNil(t, opts.Q)
			assert.Equal(t, "dodge", *opts.Q)
			// Admin callers keep their requested owner filter.
			require.NotNil(t, opts.OwnerID)
			assert.Equal(t, "auth-9", *opts.OwnerID)
			return []*model.Property{{ID: "prop-1", OwnerID: "auth-9"}}, nil
		})

	target := "/api/properties?limit=25&offset=50&q=dodge&owner_id=auth-9"
	req := withSession(httptest.NewRequest(http.MethodGet, target, nil), domainauth.RoleAdmin)
	w := httptest.NewRecorder()

	newPropertyHandlers(repo).List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var payload map[string][]model.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Len(t, payload["properties"], 1)
	assert.Equal(t, "prop-1", payload["properties"][0].ID)
}

func TestPropertyHandlers_Delete_NotFound(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPropertyRepository(ctrl)
	repo.EXPECT().GetByID(gomock.Any(), "prop-1").Return(&model.Property{ID: "prop-1", OwnerID: "auth-1"}, nil)
	repo.EXPECT().Delete(gomock.Any(), "prop-1").Return(false, nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/properties/prop-1", nil), domainauth.RoleHomeowner)
	req.SetPathValue("id", "prop-1")
	w := httptest.NewRecorder()

	newPropertyHandlers(repo).Delete(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPropertyHandlers_Delete_Success(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPropertyRepository(ctrl)
	repo.EXPECT().GetByID(gomock.Any(), "prop-1").Return(&model.Property{ID: "prop-1", OwnerID: "auth-1"}, nil)
	repo.EXPECT().Delete(gomock.Any(), "prop-1").Return(true, nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/properties/prop-1", nil), domainauth.RoleHomeowner)
	req.SetPathValue("id", "prop-1")
	w := httptest.NewRecorder()

	newPropertyHandlers(repo).Delete(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
