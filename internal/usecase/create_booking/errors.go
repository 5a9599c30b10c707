package create_booking

import "errors"

var (
	// ErrSlotNotFound is returned when the slot does not exist.
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotUnavailable is returned when the slot was withdrawn.
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrSlotFull is returned when every seat of the slot is taken.
	ErrSlotFull = errors.New("create_booking: slot is fully booked")

	// ErrSlotInPast is returned when the slot already started.
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrTooFarAhead is returned when the slot lies beyond the
	// interviewer's advance booking window.
	ErrTooFarAhead = errors.New("create_booking: slot is beyond the advance booking window")

	// ErrRequesterConflict is returned when the requester already holds an
	// overlapping active booking.
	ErrRequesterConflict = errors.New("create_booking: requester has an overlapping booking")

	// ErrMaxDailyReached is returned when the interviewer's daily
	// appointment limit is exhausted.
	ErrMaxDailyReached = errors.New("create_booking: interviewer daily limit reached")

	// ErrInterviewerInactive is returned when the owning interviewer was
	// deactivated.
	ErrInterviewerInactive = errors.New("create_booking: interviewer is not active")

	// ErrInvalidRequester is returned unless exactly one of userId and
	// guest contact identifies the requester.
	ErrInvalidRequester = errors.New("create_booking: exactly one of userId and guestEmail is required")

	// ErrMemberNotFound is returned when the member behind userId does not
	// exist in ProfileService.
	ErrMemberNotFound = errors.New("create_booking: member profile not found")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal is returned on internal use case errors.
	ErrInternal = errors.New("create_booking: internal error")
)
