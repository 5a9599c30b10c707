package reschedule_booking

import (
	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	rescheduleBooking "github.com/memberhq/SMP-AppointmentService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest is the HTTP request model.
type RescheduleBookingRequest struct {
	NewSlotID  int64   `json:"newSlotId"`
	GuestEmail *string `json:"guestEmail,omitempty"`
}

// ToUseCaseRequest builds the use case request. userID is nil for guests;
// with neither identity the move is treated as a staff action.
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID int64, userID *int64) *rescheduleBooking.Request {
	var requester *domain.RequesterFilter
	if userID != nil {
		requester = &domain.RequesterFilter{UserID: userID}
	} else if r.GuestEmail != nil {
		requester = &domain.RequesterFilter{GuestEmail: r.GuestEmail}
	}

	return &rescheduleBooking.Request{
		BookingID: bookingID,
		NewSlotID: r.NewSlotID,
		Requester: requester,
	}
}
