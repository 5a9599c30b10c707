package get_interviewer_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/memberhq/SMP-AppointmentService/internal/api/handlers"
	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	"github.com/memberhq/SMP-AppointmentService/internal/service/slots"
	"github.com/memberhq/SMP-AppointmentService/internal/service/slots/models"
)

const (
	msgInvalidID    = "invalid interviewer id"
	msgInvalidQuery = "invalid query parameters, expected from=YYYY-MM-DD&to=YYYY-MM-DD"
	msgInvalidRange = "range end precedes start"
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

// Handle GET /api/v1/interviewers/{id}/slots?from=...&to=...&type=...&bookable=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	req, err := parseQuery(id, r)
	if err != nil {
		h.logger.Warn("GET /interviewers/%d/slots - Invalid query: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidDateRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, slots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /interviewers/%d/slots - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(interviewerID int64, r *http.Request) (*models.ListSlotsRequest, error) {
	query := r.URL.Query()

	from, err := time.Parse(domain.DateFormat, query.Get("from"))
	if err != nil {
		return nil, err
	}
	to, err := time.Parse(domain.DateFormat, query.Get("to"))
	if err != nil {
		return nil, err
	}

	req := &models.ListSlotsRequest{
		InterviewerID: interviewerID,
		FromDate:      from,
		ToDate:        to,
		OnlyBookable:  query.Get("bookable") == "true",
	}
	if t := query.Get("type"); t != "" {
		req.AppointmentType = &t
	}
	return req, nil
}
