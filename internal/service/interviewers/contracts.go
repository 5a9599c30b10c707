package interviewers

import (
	"context"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
)

// InterviewerRepository is the storage interface for interviewers.
type InterviewerRepository interface {
	Create(ctx context.Context, i *domain.Interviewer) (*domain.Interviewer, error)
	GetByID(ctx context.Context, id int64) (*domain.Interviewer, error)
	ListActive(ctx context.Context) ([]*domain.Interviewer, error)
	Update(ctx context.Context, i *domain.Interviewer) error
	SetActive(ctx context.Context, id int64, active bool) error
}

// Logger describes the logging methods used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
