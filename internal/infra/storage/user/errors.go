package user

import "errors"

var (
	// ErrUserNotFound is returned when no account has the requested id
	ErrUserNotFound = errors.New("user.repository: user not found")

	// ErrBuildQuery is returned when a SQL query cannot be built
	ErrBuildQuery = errors.New("user.repository: failed to build query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("user.repository: failed to scan row")
)
