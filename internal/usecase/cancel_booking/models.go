package cancel_booking

import "github.com/memberhq/SMP-AppointmentService/internal/domain"

// Request cancels one booking. Requester identifies the caller for the
// ownership check; a nil requester is a staff cancellation and skips it.
type Request struct {
	BookingID int64
	Requester *domain.RequesterFilter
	Reason    *string
}
