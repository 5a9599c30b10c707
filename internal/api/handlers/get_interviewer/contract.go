package get_interviewer

import (
	"context"

	"github.com/memberhq/SMP-AppointmentService/internal/service/interviewers/models"
)

type InterviewerService interface {
	GetByID(ctx context.Context, id int64) (*models.InterviewerResponse, error)
	ListActive(ctx context.Context) (*models.InterviewerListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
