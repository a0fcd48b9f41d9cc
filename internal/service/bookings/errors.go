package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrProviderNotFound is returned when the caller owns no therapist or business profile
	ErrProviderNotFound = errors.New("bookings: provider profile not found")

	// ErrAccessDenied is returned when the caller is not a party of the booking
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrInvalidInput is returned for malformed filters
	ErrInvalidInput = errors.New("bookings: invalid input")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("bookings: internal error")
)
