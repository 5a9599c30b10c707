package create_slot

import "errors"

var (
	// ErrInterviewerNotFound is returned when the interviewer does not exist.
	ErrInterviewerNotFound = errors.New("create_slot: interviewer not found")

	// ErrInterviewerInactive is returned when the interviewer is deactivated.
	ErrInterviewerInactive = errors.New("create_slot: interviewer is not active")

	// ErrTypeNotOffered is returned when the interviewer does not offer the
	// requested appointment type.
	ErrTypeNotOffered = errors.New("create_slot: appointment type not offered by interviewer")

	// ErrInvalidDate is returned when the slot date lies in the past.
	ErrInvalidDate = errors.New("create_slot: invalid slot date")

	// ErrInvalidTimeRange is returned on a malformed or inverted time window.
	ErrInvalidTimeRange = errors.New("create_slot: invalid time range")

	// ErrInvalidRecurrence is returned on a malformed recurring pattern.
	ErrInvalidRecurrence = errors.New("create_slot: invalid recurrence pattern")

	// ErrNothingCreated is returned when every generated date was skipped.
	ErrNothingCreated = errors.New("create_slot: no slots could be created")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("create_slot: invalid input data")

	// ErrInternal is returned on internal use case errors.
	ErrInternal = errors.New("create_slot: internal error")
)
