package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/auth"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/mocks"
	mockauth "github.com/UNO-CSCI4830/SureSight-sub001/internal/mocks/auth"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/service"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/testutil"
)

func newLayoutHandlers(t *testing.T, sessions service.SessionSource, users *mocks.MockUserRepository) *LayoutHandlers {
	t.Helper()
	return &LayoutHandlers{
		Sessions: sessions,
		Resolver: service.NewRoleResolver(service.RoleResolverOptions{
			Users:    users,
			Identity: mockauth.NewMemoryIdentityCache(),
		}),
	}
}

func TestLayoutHandlers_NoCookie(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	handlers := newLayoutHandlers(t, &mockAuthService{}, mocks.NewMockUserRepository(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/api/layout", nil)
	w := httptest.NewRecorder()

	handlers.Layout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
}

func TestLayoutHandlers_SessionLookupFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	sessions := &mockAuthService{
		getSessionFunc: func(ctx context.Context, sessionID string) (*domainauth.Session, error) {
			return nil, errors.New("session expired")
		},
	}
	handlers := newLayoutHandlers(t, sessions, mocks.NewMockUserRepository(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/api/layout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale"})
	w := httptest.NewRecorder()

	handlers.Layout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
}

func TestLayoutHandlers_RoleFromSessionMetadata(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	handlers := newLayoutHandlers(t, &mockAuthService{}, users)

	req := httptest.NewRequest(http.MethodGet, "/api/layout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sess-1"})
	w := httptest.NewRecorder()

	handlers.Layout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, true, payload["authenticated"])
	assert.Equal(t, "homeowner", payload["role"])
	assert.Equal(t, "session_metadata", payload["role_source"])
	assert.Equal(t, "resolved", payload["role_outcome"])

	user, ok := payload["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pat@example.com", user["email"])
}

func TestLayoutHandlers_RolelessSessionStaysAuthenticated(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)

	// Session without role metadata forces the directory cascade, which
	// finds nothing. The layout still renders as signed in.
	sessions := &mockAuthService{
		getSessionFunc: func(ctx context.Context, sessionID string) (*domainauth.Session, error) {
			s := testSession(sessionID)
			s.Role = domainauth.RoleUnknown
			return s, nil
		},
	}
	users.EXPECT().GetByAuthID(gomock.Any(), "auth-1").Return(nil, errors.New("directory down"))
	users.EXPECT().GetByEmail(gomock.Any(), "pat@example.com").Return(nil, errors.New("directory down"))

	handlers := newLayoutHandlers(t, sessions, users)

	req := httptest.NewRequest(http.MethodGet, "/api/layout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sess-1"})
	w := httptest.NewRecorder()

	handlers.Layout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, true, payload["authenticated"])
	assert.Equal(t, "", payload["role"])
	assert.Equal(t, "none", payload["role_source"])
	assert.Equal(t, "unresolved", payload["role_outcome"])
}

func TestLayoutHandlers_RoleFromDirectory(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)

	sessions := &mockAuthService{
		getSessionFunc: func(ctx context.Context, sessionID string) (*domainauth.Session, error) {
			s := testSession(sessionID)
			s.Role = domainauth.RoleUnknown
			return s, nil
		},
	}
	users.EXPECT().GetByAuthID(gomock.Any(), "auth-1").Return(&model.User{
		ID:     "user-1",
		AuthID: testutil.StringPtr("auth-1"),
		Email:  "pat@example.com",
		Role:   testutil.StringPtr("adjuster"),
	}, nil)

	handlers := newLayoutHandlers(t, sessions, users)

	req := httptest.NewRequest(http.MethodGet, "/api/layout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sess-1"})
	w := httptest.NewRecorder()

	handlers.Layout(w, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "adjuster", payload["role"])
	assert.Equal(t, "auth_id", payload["role_source"])
}
