package app

import (
	"errors"

	"github.com/alexanderramin/cadence/internal/domain"
)

// ErrorCode is the stable machine-readable code attached to a failed use case.
type ErrorCode string

const (
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeValidation        ErrorCode = "VALIDATION_ERROR"
	CodeMalformedSchedule ErrorCode = "MALFORMED_SCHEDULE"
	CodePermissionDenied  ErrorCode = "FORBIDDEN"
	CodeInvalidToken      ErrorCode = "INVALID_TOKEN"
	CodeInternal          ErrorCode = "INTERNAL_ERROR"
)

// ClassifyError maps a use-case error onto its code. Field-level validation
// problems are returned alongside so callers can show them individually.
func ClassifyError(err error) (ErrorCode, []domain.ValidationError) {
	var verrs domain.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return CodeNotFound, nil
	case errors.As(err, &verrs):
		return CodeValidation, verrs
	case errors.Is(err, domain.ErrValidation):
		return CodeValidation, nil
	case errors.Is(err, domain.ErrMalformedSchedule):
		var serr *domain.ScheduleError
		if errors.As(err, &serr) {
			return CodeMalformedSchedule, []domain.ValidationError{{Field: serr.Field, Message: serr.Message}}
		}
		return CodeMalformedSchedule, nil
	case errors.Is(err, domain.ErrPermissionDenied):
		return CodePermissionDenied, nil
	default:
		return CodeInternal, nil
	}
}
