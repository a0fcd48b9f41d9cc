package create_review

import "errors"

var (
	// ErrInvalidInput is returned for a missing booking, a rating outside 1..5 or an oversized comment
	ErrInvalidInput = errors.New("create_review: invalid input")

	// ErrBookingNotFound is returned when the booking does not exist or belongs to another client
	ErrBookingNotFound = errors.New("create_review: booking not found")

	// ErrNotCompleted is returned when the booking has not been completed yet
	ErrNotCompleted = errors.New("create_review: booking is not completed")

	// ErrAlreadyReviewed is returned when the client already reviewed the provider
	ErrAlreadyReviewed = errors.New("create_review: provider already reviewed")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("create_review: internal error")
)
