package create_interviewer

import (
	"context"

	"github.com/memberhq/SMP-AppointmentService/internal/service/interviewers/models"
)

type InterviewerService interface {
	Create(ctx context.Context, req *models.CreateInterviewerRequest) (*models.InterviewerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
