package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound marks a requested project, report or template that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMalformedSchedule marks inverted or out-of-window date ranges and
	// project durations too short to plan against.
	ErrMalformedSchedule = errors.New("malformed schedule")

	// ErrValidation marks typed input that failed boundary validation.
	ErrValidation = errors.New("validation failed")

	// ErrPermissionDenied marks an actor acting outside its role.
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every problem found in one input.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (errs ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// OrNil returns nil when no errors were collected.
func (errs ValidationErrors) OrNil() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (errs *ValidationErrors) Add(field, message string) {
	*errs = append(*errs, ValidationError{Field: field, Message: message})
}

// ScheduleError is a date-range problem; it matches ErrMalformedSchedule.
type ScheduleError struct {
	Field   string
	Message string
}

func (e *ScheduleError) Error() string {
	if e.Field == "" {
		return "malformed schedule: " + e.Message
	}
	return "malformed schedule: " + e.Field + ": " + e.Message
}

func (e *ScheduleError) Is(target error) bool {
	return target == ErrMalformedSchedule
}
