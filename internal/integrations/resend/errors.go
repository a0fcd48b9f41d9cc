package resend

import "errors"

var (
	// ErrInvalidRequest is returned before sending when the e-mail is incomplete
	ErrInvalidRequest = errors.New("resend client: invalid request")

	// ErrRejected is returned when the API answers with a non-success status
	ErrRejected = errors.New("resend client: request rejected")

	// ErrInternal is returned for transport failures
	ErrInternal = errors.New("resend client: internal error")

	// ErrInvalidResponse is returned when the success body cannot be decoded
	ErrInvalidResponse = errors.New("resend client: invalid response")
)
