package profileservice

// MemberProfile is the membership profile returned by ProfileService.
type MemberProfile struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	DisplayName     string `json:"display_name"`
	Email           string `json:"email"`
	MembershipState string `json:"membership_state"` // applicant, interviewing, member, rejected
}

// InterviewResult is the payload sent when a member interview completes.
type InterviewResult struct {
	UserID    int64  `json:"user_id"`
	BookingID int64  `json:"booking_id"`
	Outcome   string `json:"outcome"` // approved, rejected, undecided
}

// ErrorResponse is the error envelope ProfileService returns.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
