package reschedule_booking

import (
	"context"
	"time"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
)

// BookingRepository reads, moves and conflict-checks bookings.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentBooking, error)
	Reschedule(ctx context.Context, id int64, newSlot *domain.AppointmentSlot) error
	ListActiveByRequesterAndDate(ctx context.Context, requester domain.RequesterFilter, date time.Time) ([]*domain.AppointmentBooking, error)
}

// SlotRepository reads slots and moves the seat between them.
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentSlot, error)
	IncrementBooked(ctx context.Context, id int64) error
	DecrementBooked(ctx context.Context, id int64) error
}

// TransactionManager runs the move in one serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider returns the current time. Swapped in tests.
type TimeProvider interface {
	Now() time.Time
}

// Logger describes the logging methods used by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time source.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
