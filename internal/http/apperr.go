package httpx

import (
	"errors"
	"net/http"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/data"
	apperrors "github.com/UNO-CSCI4830/SureSight-sub001/internal/errors"
)

// WriteServiceError maps service-layer errors to JSON error responses.
// Repo sentinels and AppError codes get specific statuses; anything else is a 500.
func WriteServiceError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, data.ErrUserNotFound),
		errors.Is(err, data.ErrProfileNotFound),
		errors.Is(err, data.ErrPropertyNotFound),
		errors.Is(err, data.ErrReportNotFound),
		errors.Is(err, data.ErrMessageNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
		return
	case errors.Is(err, data.ErrUserEmailExists):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "email_exists", Err: err})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		WriteError(w, ErrorParams{
			Code:    statusForCode(appErr.Code),
			ErrCode: string(appErr.Code),
			Err:     err,
		})
		return
	}

	WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: err})
}

func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict, apperrors.ErrCodeForeignKey:
		return http.StatusConflict
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
