package cancel_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/memberhq/SMP-AppointmentService/internal/api/handlers"
	"github.com/memberhq/SMP-AppointmentService/internal/api/middleware"
	cancelBooking "github.com/memberhq/SMP-AppointmentService/internal/usecase/cancel_booking"
)

const (
	msgInvalidID          = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgBookingNotFound    = "booking not found"
	msgAccessDenied       = "access denied"
	msgCannotCancel       = "booking cannot be cancelled"
	msgDeadlinePassed     = "cancellation deadline has passed"
	msgPolicyUnavailable  = "cancellation policy cannot be determined"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/%d/cancel - Invalid request body: %v", id, err)
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
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/%d/cancel - Not found", id)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, cancelBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/%d/cancel - Access denied", id)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, cancelBooking.ErrCannotCancel):
			h.logger.Warn("POST /bookings/%d/cancel - Cannot cancel: %v", id, err)
			handlers.RespondUnprocessable(w, msgCannotCancel)

		case errors.Is(err, cancelBooking.ErrDeadlinePassed):
			h.logger.Warn("POST /bookings/%d/cancel - Deadline passed", id)
			handlers.RespondUnprocessable(w, msgDeadlinePassed)

		case errors.Is(err, cancelBooking.ErrPolicyUnavailable):
			h.logger.Warn("POST /bookings/%d/cancel - Policy unavailable", id)
			handlers.RespondUnprocessable(w, msgPolicyUnavailable)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/%d/cancel - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/%d/cancel - Cancelled", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
