package slots

import "errors"

var (
	// ErrSlotNotFound is returned when the slot does not exist.
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotHasBookings is returned when a slot with active bookings is
	// deleted or shrunk below its booked count.
	ErrSlotHasBookings = errors.New("slot has active bookings")

	// ErrSlotConflict is returned when the updated window overlaps another
	// slot of the same interviewer on the same date.
	ErrSlotConflict = errors.New("slot overlaps another slot")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDateRange is returned when the range end precedes the start.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInternal is returned on internal service errors.
	ErrInternal = errors.New("service: internal error")
)
