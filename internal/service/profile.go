package service

import (
	"context"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/core"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
	apperrors "github.com/UNO-CSCI4830/SureSight-sub001/internal/errors"
)

// ProfileServiceOptions groups dependencies for ProfileService.
type ProfileServiceOptions struct {
	Profiles core.ProfileRepository
}

// ProfileService manages role profiles keyed by the auth-service user id.
type ProfileService struct {
	profiles core.ProfileRepository
}

// NewProfileService constructs a new ProfileService.
func NewProfileService(opts ProfileServiceOptions) *ProfileService {
	return &ProfileService{profiles: opts.Profiles}
}

// Get retrieves the profile for a user.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// Complete records the user's role details and marks the profile complete.
func (s *ProfileService) Complete(ctx context.Context, userID string, req model.CompleteProfileRequest) (*model.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.profiles.Upsert(ctx, userID, req)
}
