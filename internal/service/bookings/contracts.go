package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	"github.com/memberhq/SMP-AppointmentService/internal/integrations/profileservice"
)

// BookingRepository is the storage interface for bookings.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentBooking, error)
	GetByReferenceCode(ctx context.Context, code uuid.UUID) (*domain.AppointmentBooking, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.AppointmentBooking, error)
	ListByGuestEmail(ctx context.Context, email string) ([]*domain.AppointmentBooking, error)
	Confirm(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64, outcome domain.BookingOutcome, rating *int, feedback *string) error
	MarkNoShow(ctx context.Context, id int64) error
	IncrementReminders(ctx context.Context, id int64) error
	DueReminders(ctx context.Context, filter domain.ReminderFilter) ([]*domain.AppointmentBooking, error)
}

// SlotRepository exposes the slot reads the booking flows need.
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentSlot, error)
}

// InterviewerRepository updates the rolling performance counters.
type InterviewerRepository interface {
	RecordCompletion(ctx context.Context, id int64, rating *int) error
}

// ProfileServiceClient reports member-interview outcomes to ProfileService.
type ProfileServiceClient interface {
	ReportInterviewResultWithGracefulDegradation(ctx context.Context, result profileservice.InterviewResult) error
}

// TransactionManager runs storage operations in one transaction.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger describes the logging methods used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
