package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/memberhq/SMP-AppointmentService/internal/api/handlers"
	"github.com/memberhq/SMP-AppointmentService/internal/api/middleware"
	rescheduleBooking "github.com/memberhq/SMP-AppointmentService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidID          = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgBookingNotFound    = "booking not found"
	msgSlotNotFound       = "target slot not found"
	msgAccessDenied       = "access denied"
	msgCannotReschedule   = "booking cannot be rescheduled"
	msgDeadlinePassed     = "reschedule deadline has passed"
	msgPolicyUnavailable  = "reschedule policy cannot be determined"
	msgSlotUnavailable    = "target slot is not available"
	msgSlotFull           = "target slot is fully booked"
	msgSlotInPast         = "target slot is in the past"
	msgSameSlot           = "target slot is the current slot"
	msgTypeMismatch       = "target slot offers a different appointment type"
	msgRequesterConflict  = "you already have an overlapping booking"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{id}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/%d/reschedule - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var userID *int64
	if uid, ok := middleware.UserIDFromContext(r.Context()); ok {
		userID = &uid
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id, userID))
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/%d/reschedule - Booking not found", id)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings/%d/reschedule - Target slot not found: slot_id=%d", id, req.NewSlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, rescheduleBooking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, rescheduleBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings/%d/reschedule - Target full: slot_id=%d", id, req.NewSlotID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, rescheduleBooking.ErrRequesterConflict):
			h.logger.Warn("POST /bookings/%d/reschedule - Requester conflict", id)
			handlers.RespondConflict(w, msgRequesterConflict)

		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			handlers.RespondUnprocessable(w, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrDeadlinePassed):
			handlers.RespondUnprocessable(w, msgDeadlinePassed)

		case errors.Is(err, rescheduleBooking.ErrPolicyUnavailable):
			handlers.RespondUnprocessable(w, msgPolicyUnavailable)

		case errors.Is(err, rescheduleBooking.ErrSlotUnavailable):
			handlers.RespondUnprocessable(w, msgSlotUnavailable)

		case errors.Is(err, rescheduleBooking.ErrSlotInPast):
			handlers.RespondUnprocessable(w, msgSlotInPast)

		case errors.Is(err, rescheduleBooking.ErrSameSlot):
			handlers.RespondBadRequest(w, msgSameSlot)

		case errors.Is(err, rescheduleBooking.ErrTypeMismatch):
			handlers.RespondUnprocessable(w, msgTypeMismatch)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/%d/reschedule - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/%d/reschedule - Moved to slot_id=%d", id, result.SlotID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
