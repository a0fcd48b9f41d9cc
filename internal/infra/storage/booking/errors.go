package booking

import "errors"

var (
	// ErrBookingNotFound is returned when no booking has the requested id
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotAlreadyTaken is returned when the insert hits a slot uniqueness index
	ErrSlotAlreadyTaken = errors.New("booking.repository: slot already taken")

	// ErrInvalidTarget is returned for a target of unknown kind
	ErrInvalidTarget = errors.New("booking.repository: invalid target")

	// ErrBuildQuery is returned when a SQL query cannot be built
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery is returned when a SQL query fails
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
