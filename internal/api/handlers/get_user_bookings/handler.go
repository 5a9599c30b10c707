package get_user_bookings

import (
	"net/http"

	"github.com/memberhq/SMP-AppointmentService/internal/api/handlers"
	"github.com/memberhq/SMP-AppointmentService/internal/api/middleware"
)

const (
	msgUnauthenticated = "authentication required"
	msgMissingEmail    = "email query parameter is required"
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

// Handle GET /api/v1/bookings/my
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgUnauthenticated)
		return
	}

	result, err := h.service.GetUserBookings(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /bookings/my - Failed for user=%d: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGuest GET /api/v1/bookings/guest?email=...
func (h *Handler) HandleGuest(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	result, err := h.service.GetGuestBookings(r.Context(), email)
	if err != nil {
		h.logger.Error("GET /bookings/guest - Failed for email=%s: %v", email, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
