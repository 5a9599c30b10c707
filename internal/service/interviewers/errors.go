package interviewers

import "errors"

var (
	// ErrInterviewerNotFound is returned when the interviewer does not exist.
	ErrInterviewerNotFound = errors.New("interviewer not found")

	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("interviewer email already registered")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors.
	ErrInternal = errors.New("service: internal error")
)
