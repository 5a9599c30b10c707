package update_interviewer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/memberhq/SMP-AppointmentService/internal/api/handlers"
	"github.com/memberhq/SMP-AppointmentService/internal/service/interviewers"
	"github.com/memberhq/SMP-AppointmentService/internal/service/interviewers/models"
)

const (
	msgInvalidID           = "invalid interviewer id"
	msgInvalidRequestBody  = "invalid request body"
	msgInterviewerNotFound = "interviewer not found"
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

// Handle PUT /api/v1/interviewers/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.UpdateInterviewerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /interviewers/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, interviewers.ErrInterviewerNotFound):
			h.logger.Warn("PUT /interviewers/%d - Not found", id)
			handlers.RespondNotFound(w, msgInterviewerNotFound)

		case errors.Is(err, interviewers.ErrInvalidInput):
			h.logger.Warn("PUT /interviewers/%d - Invalid input: %v", id, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /interviewers/%d - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /interviewers/%d - Updated", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDeactivate DELETE /api/v1/interviewers/{id}
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, interviewers.ErrInterviewerNotFound):
			h.logger.Warn("DELETE /interviewers/%d - Not found", id)
			handlers.RespondNotFound(w, msgInterviewerNotFound)

		default:
			h.logger.Error("DELETE /interviewers/%d - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /interviewers/%d - Deactivated", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
