package send_message

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("send_message: booking not found")

	// ErrForbidden is returned when the sender is not a party of the booking
	ErrForbidden = errors.New("send_message: forbidden")

	// ErrInvalidInput is returned for empty or oversized content
	ErrInvalidInput = errors.New("send_message: invalid input")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("send_message: internal error")
)
