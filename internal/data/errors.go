package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// User directory sentinels.
	ErrUserNotFound    = errors.New("user not found")
	ErrUserEmailExists = errors.New("user email already exists")

	// Profile repository sentinels.
	ErrProfileNotFound = errors.New("profile not found")

	// Property repository sentinels.
	ErrPropertyNotFound = errors.New("property not found")

	// Report repository sentinels.
	ErrReportNotFound = errors.New("report not found")

	// Message repository sentinels.
	ErrMessageNotFound = errors.New("message not found")
)
