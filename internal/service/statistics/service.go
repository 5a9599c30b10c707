package statistics

import (
	"context"
	"fmt"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	"github.com/memberhq/SMP-AppointmentService/internal/service/statistics/models"
)

// Service aggregates scheduling statistics over a date range.
type Service struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService creates a statistics service.
func NewService(slotRepo SlotRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Get returns the combined slot and booking rollup for the window.
func (s *Service) Get(ctx context.Context, req *models.StatisticsRequest) (*models.StatisticsResponse, error) {
	if req.ToDate.Before(req.FromDate) {
		s.logger.Warn("Get: invalid range %s..%s",
			req.FromDate.Format(domain.DateFormat), req.ToDate.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: range end precedes start", ErrInvalidInput)
	}

	filter := domain.StatsRangeFilter{
		FromDate: req.FromDate,
		ToDate:   req.ToDate,
	}
	if req.AppointmentType != nil {
		at := domain.AppointmentType(*req.AppointmentType)
		if !at.IsValid() {
			return nil, fmt.Errorf("%w: unknown appointment type %q", ErrInvalidInput, *req.AppointmentType)
		}
		filter.AppointmentType = &at
	}

	slotStats, err := s.slotRepo.Stats(ctx, filter)
	if err != nil {
		s.logger.Error("Get: slot statistics error: %v", err)
		return nil, fmt.Errorf("%w: Get - slot statistics: %w", ErrInternal, err)
	}

	bookingStats, err := s.bookingRepo.Stats(ctx, filter)
	if err != nil {
		s.logger.Error("Get: booking statistics error: %v", err)
		return nil, fmt.Errorf("%w: Get - booking statistics: %w", ErrInternal, err)
	}

	return models.FromDomainStatistics(req.FromDate, req.ToDate, slotStats, bookingStats), nil
}
