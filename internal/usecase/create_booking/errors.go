package create_booking

import "errors"

var (
	// ErrProviderNotFound is returned when the therapist or business does not exist
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrOfferNotFound is returned when the offer does not exist
	ErrOfferNotFound = errors.New("create_booking: offer not found")

	// ErrInvalidDate is returned for a date in the past when past dates are rejected
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotNotOffered is returned for a time that is not one of the target's slots that day
	ErrSlotNotOffered = errors.New("create_booking: time is not an offered slot")

	// ErrSlotAlreadyTaken is returned when a non-cancelled booking already holds the slot
	ErrSlotAlreadyTaken = errors.New("create_booking: slot already taken")

	// ErrInvalidInput is returned for malformed input
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal is returned when storage fails
	ErrInternal = errors.New("create_booking: internal error")
)
