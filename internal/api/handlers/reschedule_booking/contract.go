package reschedule_booking

import (
	"context"

	bookingModels "github.com/memberhq/SMP-AppointmentService/internal/service/bookings/models"
	rescheduleBooking "github.com/memberhq/SMP-AppointmentService/internal/usecase/reschedule_booking"
)

type RescheduleBookingUseCase interface {
	Execute(ctx context.Context, req *rescheduleBooking.Request) (*bookingModels.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
