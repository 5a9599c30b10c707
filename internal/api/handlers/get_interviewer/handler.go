package get_interviewer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/memberhq/SMP-AppointmentService/internal/api/handlers"
	"github.com/memberhq/SMP-AppointmentService/internal/service/interviewers"
)

const (
	msgInvalidID           = "invalid interviewer id"
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

// Handle GET /api/v1/interviewers/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, interviewers.ErrInterviewerNotFound):
			h.logger.Warn("GET /interviewers/%d - Not found", id)
			handlers.RespondNotFound(w, msgInterviewerNotFound)

		default:
			h.logger.Error("GET /interviewers/%d - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/interviewers
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /interviewers - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
