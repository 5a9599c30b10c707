package profileservice

import "errors"

var (
	// ErrProfileNotFound is returned when the member has no profile.
	ErrProfileNotFound = errors.New("profileservice client: profile not found")

	// ErrInternal is returned on internal client errors.
	ErrInternal = errors.New("profileservice client: internal error")

	// ErrInvalidResponse is returned on a malformed response from the service.
	ErrInvalidResponse = errors.New("profileservice client: invalid response")

	// ErrServiceDegraded is returned when graceful degradation applies: the
	// profile service is unavailable and the caller should proceed without
	// the profile update.
	ErrServiceDegraded = errors.New("profileservice unavailable: graceful degradation applied")
)
