package schedule

import "errors"

var (
	// ErrProviderNotFound is returned when no profile has the requested id
	ErrProviderNotFound = errors.New("schedule.repository: provider not found")

	// ErrOfferNotFound is returned when no offer has the requested id
	ErrOfferNotFound = errors.New("schedule.repository: offer not found")

	// ErrInvalidKind is returned for an unknown provider kind
	ErrInvalidKind = errors.New("schedule.repository: invalid provider kind")

	// ErrBuildQuery is returned when a SQL query cannot be built
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery is returned when a SQL query fails
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
