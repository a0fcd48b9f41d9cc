package schedule

import "errors"

var (
	// ErrProviderNotFound is returned when the profile does not exist
	ErrProviderNotFound = errors.New("schedule: provider not found")

	// ErrAccessDenied is returned when the caller does not own the profile
	ErrAccessDenied = errors.New("schedule: access denied")

	// ErrInvalidInput is returned for unknown days, malformed slots or too many slots
	ErrInvalidInput = errors.New("schedule: invalid input")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("schedule: internal error")
)
