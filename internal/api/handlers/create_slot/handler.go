package create_slot

import (
	"errors"
	"net/http"

	"github.com/memberhq/SMP-AppointmentService/internal/api/handlers"
	createSlot "github.com/memberhq/SMP-AppointmentService/internal/usecase/create_slot"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidDateTime     = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgInterviewerNotFound = "interviewer not found"
	msgInterviewerInactive = "interviewer is not active"
	msgTypeNotOffered      = "appointment type not offered by this interviewer"
	msgNothingCreated      = "no slots could be created"
)

type Handler struct {
	useCase CreateSlotUseCase
	logger  Logger
}

func NewHandler(useCase CreateSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSlot.ErrInterviewerNotFound):
			h.logger.Warn("POST /slots - Interviewer not found: id=%d", req.InterviewerID)
			handlers.RespondNotFound(w, msgInterviewerNotFound)

		case errors.Is(err, createSlot.ErrInterviewerInactive):
			h.logger.Warn("POST /slots - Interviewer inactive: id=%d", req.InterviewerID)
			handlers.RespondUnprocessable(w, msgInterviewerInactive)

		case errors.Is(err, createSlot.ErrTypeNotOffered):
			h.logger.Warn("POST /slots - Type not offered: id=%d type=%s", req.InterviewerID, req.AppointmentType)
			handlers.RespondUnprocessable(w, msgTypeNotOffered)

		case errors.Is(err, createSlot.ErrNothingCreated):
			h.logger.Warn("POST /slots - Nothing created: %v", err)
			handlers.RespondConflict(w, msgNothingCreated)

		case errors.Is(err, createSlot.ErrInvalidDate),
			errors.Is(err, createSlot.ErrInvalidTimeRange),
			errors.Is(err, createSlot.ErrInvalidRecurrence),
			errors.Is(err, createSlot.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /slots - Failed to create slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Created %d slots, skipped %d dates for interviewer=%d",
		len(result.Created), len(result.Skipped), req.InterviewerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
