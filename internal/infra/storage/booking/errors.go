package booking

import "errors"

var (
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrStatusChanged means the guarded status update matched no row: the
	// booking was moved to another status by a concurrent request.
	ErrStatusChanged = errors.New("booking.repository: booking status changed concurrently")

	ErrBuildQuery = errors.New("booking.repository: failed to build query")
	ErrExecQuery  = errors.New("booking.repository: failed to execute query")
	ErrScanRow    = errors.New("booking.repository: failed to scan row")
)
