package create_booking

import (
	"errors"
	"net/http"

	"github.com/memberhq/SMP-AppointmentService/internal/api/handlers"
	"github.com/memberhq/SMP-AppointmentService/internal/api/middleware"
	createBooking "github.com/memberhq/SMP-AppointmentService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgSlotNotFound        = "slot not found"
	msgSlotUnavailable     = "slot is not available"
	msgSlotFull            = "slot is fully booked"
	msgSlotInPast          = "slot is in the past"
	msgTooFarAhead         = "slot is beyond the advance booking window"
	msgRequesterConflict   = "you already have an overlapping booking"
	msgMaxDailyReached     = "interviewer has no remaining appointments on this date"
	msgInterviewerInactive = "interviewer is not active"
	msgInvalidRequester    = "provide either an authenticated user or guest contact details"
	msgMemberNotFound      = "member profile not found"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var userID *int64
	if id, ok := middleware.UserIDFromContext(r.Context()); ok {
		userID = &id
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrMemberNotFound):
			h.logger.Warn("POST /bookings - Member not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrRequesterConflict):
			h.logger.Warn("POST /bookings - Requester conflict: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgRequesterConflict)

		case errors.Is(err, createBooking.ErrMaxDailyReached):
			h.logger.Warn("POST /bookings - Daily limit reached: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgMaxDailyReached)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			handlers.RespondUnprocessable(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrSlotInPast):
			handlers.RespondUnprocessable(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrTooFarAhead):
			handlers.RespondUnprocessable(w, msgTooFarAhead)

		case errors.Is(err, createBooking.ErrInterviewerInactive):
			handlers.RespondUnprocessable(w, msgInterviewerInactive)

		case errors.Is(err, createBooking.ErrInvalidRequester):
			handlers.RespondBadRequest(w, msgInvalidRequester)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: slot_id=%d, error=%v", req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: id=%d ref=%s slot_id=%d",
		result.ID, result.ReferenceCode, req.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
