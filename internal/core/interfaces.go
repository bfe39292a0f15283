package core

import (
	"context"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// CreateUserParams groups parameters for UserRepository.Create to keep param count ≤3.
type CreateUserParams struct {
	AuthID       *string
	Email        string
	FirstName    string
	LastName     string
	Role         *string
	PasswordHash *string
}

// UserRepository defines the interface for the legacy user directory.
type UserRepository interface {
	Create(ctx context.Context, params CreateUserParams) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByAuthID(ctx context.Context, authID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// AttachAuthID writes the given auth-service id onto the record,
	// repairing a stale or missing foreign key. It is idempotent and
	// reports whether a row was updated.
	AttachAuthID(ctx context.Context, id, authID string) (bool, error)
}

// ProfileRepository defines the interface for onboarding profile data.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	Upsert(ctx context.Context, userID string, req model.CompleteProfileRequest) (*model.Profile, error)
}

// PropertyRepository defines the interface for property data operations.
type PropertyRepository interface {
	Create(ctx context.Context, ownerID string, req model.CreatePropertyRequest) (*model.Property, error)
	GetByID(ctx context.Context, id string) (*model.Property, error)
	List(ctx context.Context, opts model.PropertiesListOptions) ([]*model.Property, error)
	Update(ctx context.Context, id string, req model.UpdatePropertyRequest) (*model.Property, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ReportRepository defines the interface for damage report data operations.
type ReportRepository interface {
	Create(ctx context.Context, creatorID string, req model.CreateReportRequest) (*model.Report, error)
	GetByID(ctx context.Context, id string) (*model.Report, error)
	List(ctx context.Context, opts model.ReportsListOptions) ([]*model.Report, error)
	Update(ctx context.Context, id string, req model.UpdateReportRequest) (*model.Report, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// MessageRepository defines the interface for direct message data operations.
type MessageRepository interface {
	Create(ctx context.Context, senderID string, req model.SendMessageRequest) (*model.Message, error)
	ListConversation(ctx context.Context, opts model.MessagesListOptions) ([]*model.Message, error)
	// MarkRead stamps read_at on a message addressed to recipientID and
	// reports whether a row was updated.
	MarkRead(ctx context.Context, id, recipientID string) (bool, error)
}
