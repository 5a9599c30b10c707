package get_statistics

import (
	"errors"
	"net/http"
	"time"

	"github.com/memberhq/SMP-AppointmentService/internal/api/handlers"
	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	"github.com/memberhq/SMP-AppointmentService/internal/service/statistics"
	"github.com/memberhq/SMP-AppointmentService/internal/service/statistics/models"
)

const msgInvalidQuery = "invalid query parameters, expected from=YYYY-MM-DD&to=YYYY-MM-DD"

type Handler struct {
	service StatisticsService
	logger  Logger
}

func NewHandler(service StatisticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/statistics?from=...&to=...&type=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
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

	req := &models.StatisticsRequest{FromDate: from, ToDate: to}
	if t := query.Get("type"); t != "" {
		req.AppointmentType = &t
	}

	result, err := h.service.Get(r.Context(), req)
	if err != nil {
		if errors.Is(err, statistics.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /statistics - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
