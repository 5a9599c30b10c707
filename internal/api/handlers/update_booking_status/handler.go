package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/memberhq/SMP-AppointmentService/internal/api/handlers"
	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	"github.com/memberhq/SMP-AppointmentService/internal/service/bookings"
	"github.com/memberhq/SMP-AppointmentService/internal/service/bookings/models"
)

const (
	msgInvalidID          = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidQuery       = "invalid query parameters, expected from=YYYY-MM-DD&to=YYYY-MM-DD"
	msgBookingNotFound    = "booking not found"
	msgInvalidTransition  = "status transition not allowed"
	msgInvalidStatus      = "unknown booking status"
	msgReminderLimit      = "reminder limit reached"
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

// Handle PATCH /api/v1/bookings/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/%d/status - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%d/status - Not found", id)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/%d/status - Invalid transition to %s", id, req.Status)
			handlers.RespondUnprocessable(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /bookings/%d/status - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d/status - Now %s", id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleReminded POST /api/v1/bookings/{id}/reminded
func (h *Handler) HandleReminded(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.MarkReminded(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrReminderLimit):
			handlers.RespondUnprocessable(w, msgReminderLimit)

		case errors.Is(err, bookings.ErrInvalidTransition):
			handlers.RespondUnprocessable(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /bookings/%d/reminded - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleDueReminders GET /api/v1/bookings/reminders/due?from=...&to=...
func (h *Handler) HandleDueReminders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from, err := time.Parse(domain.DateFormat, query.Get("from"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	to, err := time.Parse(domain.DateFormat, query.Get("to"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.DueReminders(r.Context(), &models.ReminderWindowRequest{
		FromDate: from,
		ToDate:   to,
	})
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /bookings/reminders/due - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
