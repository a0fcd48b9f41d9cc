package update_booking_status

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrForbidden is returned when the actor is not a party of the booking
	// or asks for a move reserved to the provider
	ErrForbidden = errors.New("update_booking_status: forbidden")

	// ErrInvalidTransition is returned when the status graph does not allow the move
	ErrInvalidTransition = errors.New("update_booking_status: invalid status transition")

	// ErrInvalidInput is returned for a malformed request
	ErrInvalidInput = errors.New("update_booking_status: invalid input")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("update_booking_status: internal error")
)
