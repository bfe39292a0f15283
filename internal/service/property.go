package service

import (
	"context"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/core"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
	apperrors "github.com/UNO-CSCI4830/SureSight-sub001/internal/errors"
)

// PropertyServiceOptions groups dependencies for PropertyService.
type PropertyServiceOptions struct {
	Properties core.PropertyRepository
}

// PropertyService manages homeowner properties with ownership enforcement.
type PropertyService struct {
	properties core.PropertyRepository
}

// NewPropertyService constructs a new PropertyService.
func NewPropertyService(opts PropertyServiceOptions) *PropertyService {
	return &PropertyService{properties: opts.Properties}
}

// Create registers a property owned by the actor.
func (s *PropertyService) Create(ctx context.Context, actor Actor, req model.CreatePropertyRequest) (*model.Property, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.properties.Create(ctx, actor.UserID, req)
}

// Get retrieves a property the actor may see: their own, or any when privileged.
func (s *PropertyService) Get(ctx context.Context, actor Actor, id string) (*model.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != actor.UserID && !actor.isPrivileged() {
		return nil, apperrors.Forbidden("property belongs to another user")
	}
	return property, nil
}

// List returns properties visible to the actor. Non-privileged actors are
// always scoped to their own properties regardless of the requested filter.
func (s *PropertyService) List(ctx context.Context, actor Actor, opts model.PropertiesListOptions) ([]*model.Property, error) {
	if !actor.isPrivileged() {
		opts.OwnerID = &actor.UserID
	}
	return s.properties.List(ctx, opts)
}

// Update modifies a property owned by the actor.
func (s *PropertyService) Update(ctx context.Context, actor Actor, id string, req model.UpdatePropertyRequest) (*model.Property, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.properties.Update(ctx, id, req)
}

// Delete removes a property owned by the actor.
func (s *PropertyService) Delete(ctx context.Context, actor Actor, id string) (bool, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return false, err
	}
	return s.properties.Delete(ctx, id)
}
