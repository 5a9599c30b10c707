package cancel_booking

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

// UseCase cancels a booking under the slot's cancellation policy and
// releases the seat. Cancellation is a status change; the booking row stays.
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the cancellation use case.
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

// Execute cancels the booking.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*bookingModels.BookingResponse, error) {
	uc.logger.Info("CancelBooking: booking id=%d", req.BookingID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
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

		if booking.Status == domain.StatusCancelled {
			// Cancelling twice is a no-op: the seat was already released,
			// so a second decrement must never happen.
			result = booking
			return nil
		}
		if !booking.CanBeCancelled() {
			return fmt.Errorf("%w: status is %s", ErrCannotCancel, booking.Status)
		}

		slot, err := uc.slotRepo.GetByID(txCtx, booking.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				// No slot means no policy to consult. Rejecting is the
				// fail-safe choice; staff can investigate the orphan.
				uc.logger.Error("CancelBooking: slot id=%d missing for active booking id=%d",
					booking.SlotID, booking.ID)
				return ErrPolicyUnavailable
			}
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}

		deadline := booking.ScheduledAt().Add(-time.Duration(slot.CancellationDeadlineHours) * time.Hour)
		if !now.Before(deadline) {
			uc.logger.Warn("CancelBooking: deadline passed for booking id=%d (deadline=%s)",
				booking.ID, deadline.Format(time.RFC3339))
			return ErrDeadlinePassed
		}

		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, req.Reason); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return fmt.Errorf("%w: booking changed concurrently", ErrCannotCancel)
			}
			return fmt.Errorf("%w: failed to cancel booking: %w", ErrInternal, err)
		}

		if err := uc.slotRepo.DecrementBooked(txCtx, slot.ID); err != nil {
			// A failed decrement for a booking that held a seat means the
			// ledger is corrupt. Abort the transaction rather than clamp.
			uc.logger.Error("CancelBooking: booked_count corruption on slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to release seat: %w", ErrInternal, err)
		}

		result, err = uc.bookingRepo.GetByID(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload booking: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CancelBooking: %v", err)
		} else {
			uc.logger.Warn("CancelBooking: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CancelBooking: cancelled booking id=%d", result.ID)
	return bookingModels.FromDomainBooking(result), nil
}

func checkOwnership(booking *domain.AppointmentBooking, requester *domain.RequesterFilter) error {
	if requester == nil {
		return nil // staff cancellation
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
