// Package mocks provides mock implementations for testing the SureSight repository interfaces.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(user, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
// This creates MockUserRepository with methods for all UserRepository interface methods:
// Create, GetByID, GetByAuthID, GetByEmail, AttachAuthID
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/UNO-CSCI4830/SureSight-sub001/internal/core UserRepository

// Generate mock for ProfileRepository interface from internal/core package.
// This creates MockProfileRepository with methods for all ProfileRepository interface methods:
// GetByUserID, Upsert
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=profile_repository_mock.go github.com/UNO-CSCI4830/SureSight-sub001/internal/core ProfileRepository

// Generate mock for PropertyRepository interface from internal/core package.
// This creates MockPropertyRepository with methods for all PropertyRepository interface methods:
// Create, GetByID, List, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=property_repository_mock.go github.com/UNO-CSCI4830/SureSight-sub001/internal/core PropertyRepository

// Generate mock for ReportRepository interface from internal/core package.
// This creates MockReportRepository with methods for all ReportRepository interface methods:
// Create, GetByID, List, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=report_repository_mock.go github.com/UNO-CSCI4830/SureSight-sub001/internal/core ReportRepository

// Generate mock for MessageRepository interface from internal/core package.
// This creates MockMessageRepository with methods for all MessageRepository interface methods:
// Create, ListConversation, MarkRead
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=message_repository_mock.go github.com/UNO-CSCI4830/SureSight-sub001/internal/core MessageRepository
