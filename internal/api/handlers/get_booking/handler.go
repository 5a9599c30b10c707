package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/memberhq/SMP-AppointmentService/internal/api/handlers"
	"github.com/memberhq/SMP-AppointmentService/internal/service/bookings"
)

const (
	msgInvalidID       = "invalid booking id"
	msgInvalidRef      = "invalid reference code"
	msgBookingNotFound = "booking not found"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /bookings/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleByReference GET /api/v1/bookings/ref/{code}
func (h *Handler) HandleByReference(w http.ResponseWriter, r *http.Request) {
	code, err := uuid.Parse(mux.Vars(r)["code"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRef)
		return
	}

	result, err := h.service.GetByReferenceCode(r.Context(), code)
	if err != nil {
		h.respondError(w, "GET /bookings/ref/{code}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found", route)
		handlers.RespondNotFound(w, msgBookingNotFound)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
