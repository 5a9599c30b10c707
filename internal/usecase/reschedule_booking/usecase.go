package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	bookingRepo "github.com/memberhq/SMP-AppointmentService/internal/infra/storage/booking"
	slotRepo "github.com/memberhq/SMP-AppointmentService/internal/infra/storage/slot"
	bookingModels "github.com/memberhq/SMP-AppointmentService/internal/service/bookings/models"
)

// UseCase moves a booking to another slot. The seat moves all-or-nothing
// inside one serializable transaction: the target seat is taken first, the
// old seat is released, and the booking is repointed with its status reset
// to booked. Any failure rolls back the whole move.
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the reschedule use case.
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute reschedules the booking.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*bookingModels.BookingResponse, error) {
	uc.logger.Info("RescheduleBooking: booking id=%d -> slot id=%d", req.BookingID, req.NewSlotID)

	if req.BookingID <= 0 || req.NewSlotID <= 0 {
		return nil, fmt.Errorf("%w: bookingId and newSlotId are required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var result *domain.AppointmentBooking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if err := checkOwnership(booking, req.Requester); err != nil {
			return err
		}
		if !booking.IsActive() {
			return fmt.Errorf("%w: status is %s", ErrCannotReschedule, booking.Status)
		}
		if booking.SlotID == req.NewSlotID {
			return ErrSameSlot
		}

		oldSlot, err := uc.slotRepo.GetByID(txCtx, booking.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Error("RescheduleBooking: slot id=%d missing for active booking id=%d",
					booking.SlotID, booking.ID)
				return ErrPolicyUnavailable
			}
			return fmt.Errorf("%w: failed to get current slot: %w", ErrInternal, err)
		}

		deadline := booking.ScheduledAt().Add(-time.Duration(oldSlot.CancellationDeadlineHours) * time.Hour)
		if !now.Before(deadline) {
			return ErrDeadlinePassed
		}

		newSlot, err := uc.slotRepo.GetByID(txCtx, req.NewSlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get target slot: %w", ErrInternal, err)
		}

		if err := uc.checkTarget(booking, newSlot, now); err != nil {
			return err
		}

		if err := uc.checkRequesterConflicts(txCtx, booking, newSlot); err != nil {
			return err
		}

		if err := uc.slotRepo.IncrementBooked(txCtx, newSlot.ID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotFull) {
				return ErrSlotFull
			}
			return fmt.Errorf("%w: failed to reserve target seat: %w", ErrInternal, err)
		}

		if err := uc.slotRepo.DecrementBooked(txCtx, oldSlot.ID); err != nil {
			uc.logger.Error("RescheduleBooking: booked_count corruption on slot id=%d: %v", oldSlot.ID, err)
			return fmt.Errorf("%w: failed to release old seat: %w", ErrInternal, err)
		}

		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, newSlot); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return fmt.Errorf("%w: booking changed concurrently", ErrCannotReschedule)
			}
			return fmt.Errorf("%w: failed to move booking: %w", ErrInternal, err)
		}

		result, err = uc.bookingRepo.GetByID(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload booking: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("RescheduleBooking: %v", err)
		} else {
			uc.logger.Warn("RescheduleBooking: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to slot id=%d (reschedules=%d)",
		result.ID, result.SlotID, result.RescheduleCount)
	return bookingModels.FromDomainBooking(result), nil
}

func (uc *UseCase) checkTarget(booking *domain.AppointmentBooking, slot *domain.AppointmentSlot, now time.Time) error {
	if !slot.IsAvailable {
		return ErrSlotUnavailable
	}
	if slot.IsFull() {
		return ErrSlotFull
	}
	if !slot.StartsAt().After(now) {
		return ErrSlotInPast
	}
	if slot.AppointmentType != booking.AppointmentType {
		return ErrTypeMismatch
	}
	return nil
}

// checkRequesterConflicts runs the same overlap rule as booking creation,
// with the moving booking itself excluded.
func (uc *UseCase) checkRequesterConflicts(ctx context.Context, booking *domain.AppointmentBooking, newSlot *domain.AppointmentSlot) error {
	candidate := &domain.AppointmentBooking{
		UserID:          booking.UserID,
		GuestEmail:      booking.GuestEmail,
		ScheduledDate:   newSlot.SlotDate,
		ScheduledTime:   newSlot.StartTime,
		DurationMinutes: newSlot.DurationMinutes,
		Status:          domain.StatusBooked,
	}

	existing, err := uc.bookingRepo.ListActiveByRequesterAndDate(ctx, domain.RequesterOf(booking), newSlot.SlotDate)
	if err != nil {
		return fmt.Errorf("%w: failed to list requester bookings: %w", ErrInternal, err)
	}

	for _, b := range existing {
		if b.ID == booking.ID {
			continue
		}
		if candidate.ConflictsWith(b) {
			return ErrRequesterConflict
		}
	}
	return nil
}

func checkOwnership(booking *domain.AppointmentBooking, requester *domain.RequesterFilter) error {
	if requester == nil {
		return nil // staff move
	}

	switch {
	case requester.UserID != nil:
		if booking.UserID != nil && *booking.UserID == *requester.UserID {
			return nil
		}
	case requester.GuestEmail != nil:
		if booking.GuestEmail != nil && *booking.GuestEmail == *requester.GuestEmail {
			return nil
		}
	}
	return ErrAccessDenied
}
