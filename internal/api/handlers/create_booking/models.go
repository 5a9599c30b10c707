package create_booking

import (
	createBooking "github.com/memberhq/SMP-AppointmentService/internal/usecase/create_booking"
)

// CreateBookingRequest is the HTTP request model. Authenticated requests
// carry the user id in the X-User-ID header; guest requests carry contact
// details in the body.
type CreateBookingRequest struct {
	SlotID     int64   `json:"slotId"`
	GuestName  *string `json:"guestName,omitempty"`
	GuestEmail *string `json:"guestEmail,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// ToUseCaseRequest builds the use case request. userID is nil for guests.
func (r *CreateBookingRequest) ToUseCaseRequest(userID *int64) *createBooking.Request {
	return &createBooking.Request{
		SlotID:     r.SlotID,
		UserID:     userID,
		GuestName:  r.GuestName,
		GuestEmail: r.GuestEmail,
		GuestPhone: r.GuestPhone,
		Notes:      r.Notes,
	}
}
