package create_slot

import (
	"context"
	"time"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
)

// SlotRepository is the storage interface the generator writes through.
type SlotRepository interface {
	Create(ctx context.Context, s *domain.AppointmentSlot) (*domain.AppointmentSlot, error)
	ListByInterviewerAndDate(ctx context.Context, interviewerID int64, date time.Time) ([]*domain.AppointmentSlot, error)
}

// InterviewerRepository resolves the owning interviewer.
type InterviewerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Interviewer, error)
}

// TransactionManager runs the whole batch in one serializable transaction.
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
