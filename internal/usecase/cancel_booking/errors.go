package cancel_booking

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied is returned when the requester does not own the booking.
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrCannotCancel is returned when the booking is already terminal.
	ErrCannotCancel = errors.New("cancel_booking: booking cannot be cancelled")

	// ErrDeadlinePassed is returned when the slot's cancellation deadline
	// has passed.
	ErrDeadlinePassed = errors.New("cancel_booking: cancellation deadline has passed")

	// ErrPolicyUnavailable is returned when the slot backing the booking is
	// gone. With no policy to consult the cancellation is rejected, not
	// waved through.
	ErrPolicyUnavailable = errors.New("cancel_booking: cancellation policy cannot be determined")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal is returned on internal use case errors.
	ErrInternal = errors.New("cancel_booking: internal error")
)
