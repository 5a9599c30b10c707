package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied is returned when the requester does not own the booking.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition is returned when the requested status is not
	// reachable from the booking's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidStatus is returned on an unknown status value.
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrReminderLimit is returned when the booking already received the
	// maximum number of reminders.
	ErrReminderLimit = errors.New("reminder limit reached")

	// ErrInternal is returned on internal service errors.
	ErrInternal = errors.New("service: internal error")
)
