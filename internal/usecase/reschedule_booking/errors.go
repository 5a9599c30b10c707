package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrSlotNotFound is returned when the target slot does not exist.
	ErrSlotNotFound = errors.New("reschedule_booking: target slot not found")

	// ErrAccessDenied is returned when the requester does not own the booking.
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrCannotReschedule is returned when the booking is already terminal.
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrDeadlinePassed is returned when the current slot's cancellation
	// deadline has passed; a reschedule is a cancel plus a rebook.
	ErrDeadlinePassed = errors.New("reschedule_booking: reschedule deadline has passed")

	// ErrPolicyUnavailable is returned when the current slot is gone and no
	// deadline policy can be consulted.
	ErrPolicyUnavailable = errors.New("reschedule_booking: reschedule policy cannot be determined")

	// ErrSlotUnavailable is returned when the target slot was withdrawn.
	ErrSlotUnavailable = errors.New("reschedule_booking: target slot is not available")

	// ErrSlotFull is returned when every seat of the target slot is taken.
	ErrSlotFull = errors.New("reschedule_booking: target slot is fully booked")

	// ErrSlotInPast is returned when the target slot already started.
	ErrSlotInPast = errors.New("reschedule_booking: target slot is in the past")

	// ErrSameSlot is returned when the target slot is the current one.
	ErrSameSlot = errors.New("reschedule_booking: target slot is the current slot")

	// ErrTypeMismatch is returned when the target slot offers a different
	// appointment type.
	ErrTypeMismatch = errors.New("reschedule_booking: appointment type mismatch")

	// ErrRequesterConflict is returned when the requester already holds an
	// overlapping active booking at the target time.
	ErrRequesterConflict = errors.New("reschedule_booking: requester has an overlapping booking")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal is returned on internal use case errors.
	ErrInternal = errors.New("reschedule_booking: internal error")
)
