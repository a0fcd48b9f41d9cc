package authadmin

import "errors"

var (
	// ErrUserNotFound is returned when the auth provider has no such account
	ErrUserNotFound = errors.New("authadmin client: user not found")

	// ErrInternal is returned for transport failures and rejected credentials
	ErrInternal = errors.New("authadmin client: internal error")

	// ErrInvalidResponse is returned for unexpected responses from the auth provider
	ErrInvalidResponse = errors.New("authadmin client: invalid response")
)
