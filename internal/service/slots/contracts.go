package slots

import (
	"context"
	"time"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
)

// SlotRepository is the storage interface for appointment slots.
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentSlot, error)
	ListByRange(ctx context.Context, filter domain.SlotRangeFilter) ([]*domain.AppointmentSlot, error)
	ListByInterviewerAndDate(ctx context.Context, interviewerID int64, date time.Time) ([]*domain.AppointmentSlot, error)
	Update(ctx context.Context, s *domain.AppointmentSlot) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository exposes the booking reads the slot flows need.
type BookingRepository interface {
	CountActiveBySlot(ctx context.Context, slotID int64) (int, error)
}

// InterviewerRepository exposes the interviewer read the conflict check
// needs for its buffer setting.
type InterviewerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Interviewer, error)
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
