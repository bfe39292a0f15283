package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
	apperrors "github.com/UNO-CSCI4830/SureSight-sub001/internal/errors"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/mocks"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/testutil"
)

func TestProfileService_Complete(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := model.CompleteProfileRequest{Role: "homeowner"}

	repo := mocks.NewMockProfileRepository(ctrl)
	repo.EXPECT().
		Upsert(gomock.Any(), "auth-1", req).
		Return(&model.Profile{
			UserID:          "auth-1",
			Role:            testutil.StringPtr("homeowner"),
			ProfileComplete: true,
		}, nil)

	svc := NewProfileService(ProfileServiceOptions{Profiles: repo})

	profile, err := svc.Complete(context.Background(), "auth-1", req)
	require.NoError(t, err)
	assert.True(t, profile.ProfileComplete)
}

func TestProfileService_Complete_NormalizesRoleCase(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockProfileRepository(ctrl)
	repo.EXPECT().
		Upsert(gomock.Any(), "auth-1", gomock.AssignableToTypeOf(model.CompleteProfileRequest{})).
		DoAndReturn(func(_ context.Context, _ string, req model.CompleteProfileRequest) (*model.Profile, error) {
			assert.Equal(t, "contractor", req.Role)
			return &model.Profile{UserID: "auth-1", ProfileComplete: true}, nil
		})

	svc := NewProfileService(ProfileServiceOptions{Profiles: repo})

	_, err := svc.Complete(context.Background(), "auth-1", model.CompleteProfileRequest{
		Role:        "Contractor",
		CompanyName: testutil.StringPtr("Heartland Roofing LLC"),
	})
	require.NoError(t, err)
}

func TestProfileService_Complete_ContractorNeedsCompany(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockProfileRepository(ctrl)
	svc := NewProfileService(ProfileServiceOptions{Profiles: repo})

	_, err := svc.Complete(context.Background(), "auth-1", model.CompleteProfileRequest{Role: "contractor"})
	assertAppErrorCode(t, err, apperrors.ErrCodeValidation)
}

func TestProfileService_Complete_UnknownRoleRejected(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockProfileRepository(ctrl)
	svc := NewProfileService(ProfileServiceOptions{Profiles: repo})

	_, err := svc.Complete(context.Background(), "auth-1", model.CompleteProfileRequest{Role: "wizard"})
	assertAppErrorCode(t, err, apperrors.ErrCodeValidation)
}

func TestProfileService_Get(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockProfileRepository(ctrl)
	repo.EXPECT().
		GetByUserID(gomock.Any(), "auth-1").
		Return(&model.Profile{UserID: "auth-1"}, nil)

	svc := NewProfileService(ProfileServiceOptions{Profiles: repo})

	profile, err := svc.Get(context.Background(), "auth-1")
	require.NoError(t, err)
	assert.Equal(t, "auth-1", profile.UserID)
}
