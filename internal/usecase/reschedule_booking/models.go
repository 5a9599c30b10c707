package reschedule_booking

import "github.com/memberhq/SMP-AppointmentService/internal/domain"

// Request moves one booking to a different slot. Requester identifies the
// caller for the ownership check; a nil requester is a staff move.
type Request struct {
	BookingID int64
	NewSlotID int64
	Requester *domain.RequesterFilter
}
