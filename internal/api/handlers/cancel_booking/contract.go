package cancel_booking

import (
	"context"

	bookingModels "github.com/memberhq/SMP-AppointmentService/internal/service/bookings/models"
	cancelBooking "github.com/memberhq/SMP-AppointmentService/internal/usecase/cancel_booking"
)

type CancelBookingUseCase interface {
	Execute(ctx context.Context, req *cancelBooking.Request) (*bookingModels.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
