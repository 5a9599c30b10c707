package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	slotRepo "github.com/memberhq/SMP-AppointmentService/internal/infra/storage/slot"
	"github.com/memberhq/SMP-AppointmentService/internal/service/slots/models"
	"github.com/memberhq/SMP-AppointmentService/pkg/types"
)

// Service manages existing appointment slots: lookups, edits and removal.
// Creation, including recurring generation, lives in its own use case.
type Service struct {
	slotRepo        SlotRepository
	bookingRepo     BookingRepository
	interviewerRepo InterviewerRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService creates a slot service.
func NewService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	interviewerRepo InterviewerRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:        slotRepo,
		bookingRepo:     bookingRepo,
		interviewerRepo: interviewerRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID fetches one slot.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// List returns an interviewer's slots over a date range, optionally only
// the bookable ones.
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	if req.ToDate.Before(req.FromDate) {
		s.logger.Warn("List: invalid range %s..%s for interviewer=%d",
			req.FromDate.Format(domain.DateFormat), req.ToDate.Format(domain.DateFormat), req.InterviewerID)
		return nil, ErrInvalidDateRange
	}

	filter := domain.SlotRangeFilter{
		InterviewerID: req.InterviewerID,
		FromDate:      req.FromDate,
		ToDate:        req.ToDate,
		OnlyBookable:  req.OnlyBookable,
	}
	if req.AppointmentType != nil {
		at := domain.AppointmentType(*req.AppointmentType)
		if !at.IsValid() {
			return nil, fmt.Errorf("%w: unknown appointment type %q", ErrInvalidInput, *req.AppointmentType)
		}
		filter.AppointmentType = &at
	}

	slots, err := s.slotRepo.ListByRange(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for interviewer=%d: %v", req.InterviewerID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSlotList(slots), nil
}

// Update rewrites a slot's mutable fields. Capacity can never drop below
// the current booked count; the denormalized duration is recomputed when
// the window moves.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Update: updating slot id=%d", id)

	var updated *domain.AppointmentSlot
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}

		if err := applyUpdate(slot, req); err != nil {
			return err
		}

		if req.StartTime != nil || req.EndTime != nil {
			if err := s.checkConflicts(txCtx, slot); err != nil {
				return err
			}
		}

		if err := s.slotRepo.Update(txCtx, slot); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}

		updated = slot
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrInvalidInput) ||
			errors.Is(err, ErrSlotHasBookings) || errors.Is(err, ErrSlotConflict) {
			s.logger.Warn("Update: slot id=%d: %v", id, err)
		} else {
			s.logger.Error("Update: slot id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Update: updated slot id=%d", id)
	return models.FromDomainSlot(updated), nil
}

// Delete removes a slot. A slot holding booked or confirmed bookings is
// never deleted; requesters keep their appointments.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting slot id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.slotRepo.GetByID(txCtx, id); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}

		active, err := s.bookingRepo.CountActiveBySlot(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Delete - count active bookings: %w", ErrInternal, err)
		}
		if active > 0 {
			return fmt.Errorf("%w: %d active bookings", ErrSlotHasBookings, active)
		}

		if err := s.slotRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrSlotHasBookings) {
			s.logger.Warn("Delete: slot id=%d: %v", id, err)
		} else {
			s.logger.Error("Delete: slot id=%d: %v", id, err)
		}
		return err
	}

	s.logger.Info("Delete: deleted slot id=%d", id)
	return nil
}

// checkConflicts verifies the slot's new window, padded by the interviewer's
// buffer, against the interviewer's other slots on the same date. The slot
// being updated is excluded from the comparison.
func (s *Service) checkConflicts(ctx context.Context, slot *domain.AppointmentSlot) error {
	interviewer, err := s.interviewerRepo.GetByID(ctx, slot.InterviewerID)
	if err != nil {
		return fmt.Errorf("%w: Update - get interviewer: %w", ErrInternal, err)
	}

	existing, err := s.slotRepo.ListByInterviewerAndDate(ctx, slot.InterviewerID, slot.SlotDate)
	if err != nil {
		return fmt.Errorf("%w: Update - list slots for date: %w", ErrInternal, err)
	}

	padStart, padEnd := domain.PadRange(slot.StartTime, slot.EndTime, interviewer.BufferMinutes)
	for _, ex := range existing {
		if ex.ID == slot.ID {
			continue
		}
		if domain.RangesOverlap(padStart, padEnd, ex.StartTime, ex.EndTime) {
			return fmt.Errorf("%w: overlaps slot id=%d", ErrSlotConflict, ex.ID)
		}
	}
	return nil
}

func applyUpdate(slot *domain.AppointmentSlot, req *models.UpdateSlotRequest) error {
	start := slot.StartTime
	end := slot.EndTime

	if req.StartTime != nil {
		parsed, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return fmt.Errorf("%w: invalid startTime: %w", ErrInvalidInput, err)
		}
		start = parsed
	}
	if req.EndTime != nil {
		parsed, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return fmt.Errorf("%w: invalid endTime: %w", ErrInvalidInput, err)
		}
		end = parsed
	}

	if !start.IsBefore(end) {
		return fmt.Errorf("%w: startTime must precede endTime", ErrInvalidInput)
	}

	duration := start.MinutesUntil(end)
	if duration < domain.MinSlotDurationMinutes || duration > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: duration %d minutes out of range", ErrInvalidInput, duration)
	}

	if req.Capacity != nil {
		if *req.Capacity < domain.MinCapacity || *req.Capacity > domain.MaxCapacity {
			return fmt.Errorf("%w: capacity out of range", ErrInvalidInput)
		}
		if *req.Capacity < slot.BookedCount {
			return fmt.Errorf("%w: capacity below booked count", ErrSlotHasBookings)
		}
		slot.Capacity = *req.Capacity
	}

	if req.CancellationDeadlineHours != nil {
		if *req.CancellationDeadlineHours < 0 {
			return fmt.Errorf("%w: cancellationDeadlineHours must not be negative", ErrInvalidInput)
		}
		slot.CancellationDeadlineHours = *req.CancellationDeadlineHours
	}

	if req.IsAvailable != nil {
		slot.IsAvailable = *req.IsAvailable
	}
	if req.RequiresApproval != nil {
		slot.RequiresApproval = *req.RequiresApproval
	}

	slot.StartTime = start
	slot.EndTime = end
	slot.DurationMinutes = duration
	return nil
}
