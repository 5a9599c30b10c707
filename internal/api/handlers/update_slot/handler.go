package update_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/memberhq/SMP-AppointmentService/internal/api/handlers"
	"github.com/memberhq/SMP-AppointmentService/internal/service/slots"
	"github.com/memberhq/SMP-AppointmentService/internal/service/slots/models"
)

const (
	msgInvalidID          = "invalid slot id"
	msgInvalidRequestBody = "invalid request body"
	msgSlotNotFound       = "slot not found"
	msgSlotHasBookings    = "slot has active bookings"
	msgSlotConflict       = "slot overlaps another slot"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/slots/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PUT /slots/%d - Not found", id)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrSlotHasBookings):
			h.logger.Warn("PUT /slots/%d - Has active bookings", id)
			handlers.RespondConflict(w, msgSlotHasBookings)

		case errors.Is(err, slots.ErrSlotConflict):
			h.logger.Warn("PUT /slots/%d - Overlaps another slot: %v", id, err)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PUT /slots/%d - Invalid input: %v", id, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /slots/%d - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slots/%d - Updated", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/slots/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /slots/%d - Not found", id)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrSlotHasBookings):
			h.logger.Warn("DELETE /slots/%d - Has active bookings", id)
			handlers.RespondConflict(w, msgSlotHasBookings)

		default:
			h.logger.Error("DELETE /slots/%d - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /slots/%d - Deleted", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
