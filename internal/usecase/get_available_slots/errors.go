package get_available_slots

import "errors"

var (
	// ErrProviderNotFound is returned when the therapist or business does not exist
	ErrProviderNotFound = errors.New("get_available_slots: provider not found")

	// ErrOfferNotFound is returned when the offer does not exist or has no owner
	ErrOfferNotFound = errors.New("get_available_slots: offer not found")

	// ErrInvalidInput is returned for a missing or ambiguous target or a malformed date
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal is returned when storage fails
	ErrInternal = errors.New("get_available_slots: internal error")
)
