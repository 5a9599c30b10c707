package slot

import "errors"

var (
	// ErrSlotNotFound is returned when the slot does not exist.
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotFull is returned by the conditional increment when the slot has
	// no spare capacity or is not offered for booking.
	ErrSlotFull = errors.New("slot.repository: slot is full or unavailable")

	// ErrNegativeBookedCount is returned by the conditional decrement when
	// booked_count is already zero. This is an invariant violation on the
	// caller's side, never silently clamped.
	ErrNegativeBookedCount = errors.New("slot.repository: booked count would go negative")

	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
