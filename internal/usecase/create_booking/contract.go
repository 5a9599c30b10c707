package create_booking

import (
	"context"
	"time"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	"github.com/memberhq/SMP-AppointmentService/internal/integrations/profileservice"
)

// SlotRepository reads and reserves slot capacity.
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentSlot, error)
	IncrementBooked(ctx context.Context, id int64) error
}

// BookingRepository persists bookings and detects requester conflicts.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.AppointmentBooking) (*domain.AppointmentBooking, error)
	ListActiveByRequesterAndDate(ctx context.Context, requester domain.RequesterFilter, date time.Time) ([]*domain.AppointmentBooking, error)
	CountActiveForInterviewerOnDate(ctx context.Context, interviewerID int64, date time.Time) (int, error)
}

// InterviewerRepository resolves the owning interviewer and its counters.
type InterviewerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Interviewer, error)
	RecordBooking(ctx context.Context, id int64) error
}

// ProfileServiceClient verifies that the member behind userId exists.
type ProfileServiceClient interface {
	GetProfile(ctx context.Context, userID int64) (*profileservice.MemberProfile, error)
}

// TransactionManager runs the booking flow in one serializable transaction.
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
