package interviewer

import "errors"

var (
	ErrInterviewerNotFound = errors.New("interviewer.repository: interviewer not found")
	ErrDuplicateEmail      = errors.New("interviewer.repository: email already registered")

	ErrBuildQuery = errors.New("interviewer.repository: failed to build query")
	ErrExecQuery  = errors.New("interviewer.repository: failed to execute query")
	ErrScanRow    = errors.New("interviewer.repository: failed to scan row")
)
