package update_booking_status

import (
	"context"

	"github.com/memberhq/SMP-AppointmentService/internal/service/bookings/models"
)

type BookingService interface {
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error)
	MarkReminded(ctx context.Context, id int64) error
	DueReminders(ctx context.Context, req *models.ReminderWindowRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
