package cancel_booking

import (
	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	cancelBooking "github.com/memberhq/SMP-AppointmentService/internal/usecase/cancel_booking"
)

// CancelBookingRequest is the HTTP request model. Guests identify
// themselves by the email the booking was made under.
type CancelBookingRequest struct {
	GuestEmail *string `json:"guestEmail,omitempty"`
	Reason     *string `json:"cancellationReason,omitempty"`
}

// ToUseCaseRequest builds the use case request. userID is nil for guests;
// with neither a user nor a guest email the cancellation is treated as a
// staff action.
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID int64, userID *int64) *cancelBooking.Request {
	var requester *domain.RequesterFilter
	if userID != nil {
		requester = &domain.RequesterFilter{UserID: userID}
	} else if r.GuestEmail != nil {
		requester = &domain.RequesterFilter{GuestEmail: r.GuestEmail}
	}

	return &cancelBooking.Request{
		BookingID: bookingID,
		Requester: requester,
		Reason:    r.Reason,
	}
}
