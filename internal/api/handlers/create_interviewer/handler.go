package create_interviewer

import (
	"errors"
	"net/http"

	"github.com/memberhq/SMP-AppointmentService/internal/api/handlers"
	"github.com/memberhq/SMP-AppointmentService/internal/service/interviewers"
	"github.com/memberhq/SMP-AppointmentService/internal/service/interviewers/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgDuplicateEmail     = "email already registered"
)

type Handler struct {
	service InterviewerService
	logger  Logger
}

func NewHandler(service InterviewerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/interviewers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInterviewerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /interviewers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, interviewers.ErrDuplicateEmail):
			h.logger.Warn("POST /interviewers - Duplicate email: %s", req.Email)
			handlers.RespondConflict(w, msgDuplicateEmail)

		case errors.Is(err, interviewers.ErrInvalidInput):
			h.logger.Warn("POST /interviewers - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /interviewers - Failed to create interviewer: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /interviewers - Created interviewer id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
