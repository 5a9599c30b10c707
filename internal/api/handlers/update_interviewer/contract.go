package update_interviewer

import (
	"context"

	"github.com/memberhq/SMP-AppointmentService/internal/service/interviewers/models"
)

type InterviewerService interface {
	Update(ctx context.Context, id int64, req *models.UpdateInterviewerRequest) (*models.InterviewerResponse, error)
	Deactivate(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
