package review

import "errors"

var (
	// ErrAlreadyReviewed is returned when the client has already reviewed the provider
	ErrAlreadyReviewed = errors.New("review.repository: provider already reviewed")

	// ErrBuildQuery is returned when a SQL query cannot be built
	ErrBuildQuery = errors.New("review.repository: failed to build query")

	// ErrExecQuery is returned when a SQL query fails
	ErrExecQuery = errors.New("review.repository: failed to execute query")
)
