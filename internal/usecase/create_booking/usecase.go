package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	slotRepo "github.com/memberhq/SMP-AppointmentService/internal/infra/storage/slot"
	"github.com/memberhq/SMP-AppointmentService/internal/integrations/profileservice"
	bookingModels "github.com/memberhq/SMP-AppointmentService/internal/service/bookings/models"
)

// UseCase books one seat on a slot. The whole flow runs in a serializable
// transaction: the slot row is locked, the requester's same-day bookings
// are checked for overlap, and the seat is taken with a conditional
// increment, so the capacity invariant holds under concurrent requests.
type UseCase struct {
	slotRepo        SlotRepository
	bookingRepo     BookingRepository
	interviewerRepo InterviewerRepository
	profileClient   ProfileServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the booking creation use case.
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	interviewerRepo InterviewerRepository,
	profileClient ProfileServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:        slotRepo,
		bookingRepo:     bookingRepo,
		interviewerRepo: interviewerRepo,
		profileClient:   profileClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute creates the booking.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*bookingModels.BookingResponse, error) {
	uc.logger.Info("CreateBooking: slot=%d, user=%v, guest=%v", req.SlotID, req.UserID, req.GuestEmail)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// The member lookup goes over HTTP, so it happens before any row locks
	// are taken.
	if req.UserID != nil {
		if _, err := uc.profileClient.GetProfile(ctx, *req.UserID); err != nil {
			if errors.Is(err, profileservice.ErrProfileNotFound) {
				uc.logger.Warn("CreateBooking: member id=%d not found in ProfileService", *req.UserID)
				return nil, ErrMemberNotFound
			}
			uc.logger.Error("CreateBooking: ProfileService lookup failed for member id=%d: %v", *req.UserID, err)
			return nil, fmt.Errorf("%w: failed to verify member profile: %w", ErrInternal, err)
		}
	}

	now := uc.timeProvider.Now()

	var result *domain.AppointmentBooking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}

		if !slot.IsAvailable {
			return ErrSlotUnavailable
		}
		if slot.IsFull() {
			return ErrSlotFull
		}

		startsAt := slot.StartsAt()
		if !startsAt.After(now) {
			return ErrSlotInPast
		}

		interviewer, err := uc.interviewerRepo.GetByID(txCtx, slot.InterviewerID)
		if err != nil {
			return fmt.Errorf("%w: failed to get interviewer: %w", ErrInternal, err)
		}
		if !interviewer.IsActive {
			return ErrInterviewerInactive
		}
		if startsAt.After(now.AddDate(0, 0, interviewer.AdvanceBookingDays)) {
			return ErrTooFarAhead
		}

		dailyCount, err := uc.bookingRepo.CountActiveForInterviewerOnDate(txCtx, slot.InterviewerID, slot.SlotDate)
		if err != nil {
			return fmt.Errorf("%w: failed to count daily bookings: %w", ErrInternal, err)
		}
		if dailyCount >= interviewer.MaxDailyAppointments {
			uc.logger.Warn("CreateBooking: interviewer=%d daily limit %d reached on %s",
				slot.InterviewerID, interviewer.MaxDailyAppointments, slot.SlotDate.Format(domain.DateFormat))
			return ErrMaxDailyReached
		}

		candidate := uc.buildBooking(req, slot)

		if err := uc.checkRequesterConflicts(txCtx, candidate); err != nil {
			return err
		}

		if err := uc.slotRepo.IncrementBooked(txCtx, slot.ID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotFull) {
				return ErrSlotFull
			}
			return fmt.Errorf("%w: failed to reserve seat: %w", ErrInternal, err)
		}

		created, err := uc.bookingRepo.Create(txCtx, candidate)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		if err := uc.interviewerRepo.RecordBooking(txCtx, slot.InterviewerID); err != nil {
			return fmt.Errorf("%w: failed to record booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateBooking: %v", err)
		default:
			uc.logger.Warn("CreateBooking: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d ref=%s status=%s",
		result.ID, result.ReferenceCode, result.Status)
	return bookingModels.FromDomainBooking(result), nil
}

// checkRequesterConflicts rejects the booking when the requester already
// holds an active booking overlapping the candidate window on the same day.
// The rows are read under FOR UPDATE so a concurrent booking of the same
// requester serializes against this check.
func (uc *UseCase) checkRequesterConflicts(ctx context.Context, candidate *domain.AppointmentBooking) error {
	existing, err := uc.bookingRepo.ListActiveByRequesterAndDate(ctx, domain.RequesterOf(candidate), candidate.ScheduledDate)
	if err != nil {
		return fmt.Errorf("%w: failed to list requester bookings: %w", ErrInternal, err)
	}

	for _, b := range existing {
		if candidate.ConflictsWith(b) {
			uc.logger.Warn("CreateBooking: conflict with booking id=%d at %s", b.ID, b.ScheduledTime)
			return ErrRequesterConflict
		}
	}
	return nil
}

// buildBooking denormalizes the slot schedule onto the booking so it stays
// meaningful if the slot is later deleted. Auto-approved slots start out
// confirmed; the rest wait for the interviewer.
func (uc *UseCase) buildBooking(req *Request, slot *domain.AppointmentSlot) *domain.AppointmentBooking {
	status := domain.StatusBooked
	if !slot.RequiresApproval {
		status = domain.StatusConfirmed
	}

	return &domain.AppointmentBooking{
		ReferenceCode:   uuid.New(),
		SlotID:          slot.ID,
		UserID:          req.UserID,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		AppointmentType: slot.AppointmentType,
		ScheduledDate:   slot.SlotDate,
		ScheduledTime:   slot.StartTime,
		DurationMinutes: slot.DurationMinutes,
		Timezone:        slot.Timezone,
		Status:          status,
		Notes:           req.Notes,
	}
}
