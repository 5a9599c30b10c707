package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	bookingRepo "github.com/memberhq/SMP-AppointmentService/internal/infra/storage/booking"
	"github.com/memberhq/SMP-AppointmentService/internal/integrations/profileservice"
	"github.com/memberhq/SMP-AppointmentService/internal/service/bookings/models"
)

// Service manages booking reads and lifecycle transitions. Creation,
// cancellation and rescheduling have their own use cases; everything that
// moves a booking forward (confirm, complete, no-show) lives here.
type Service struct {
	bookingRepo     BookingRepository
	slotRepo        SlotRepository
	interviewerRepo InterviewerRepository
	profileClient   ProfileServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewService creates a booking service.
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	interviewerRepo InterviewerRepository,
	profileClient ProfileServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:     bookingRepo,
		slotRepo:        slotRepo,
		interviewerRepo: interviewerRepo,
		profileClient:   profileClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID fetches one booking.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetByReferenceCode fetches one booking by its public reference code. This
// is the lookup guests use; the code itself is the credential.
func (s *Service) GetByReferenceCode(ctx context.Context, code uuid.UUID) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByReferenceCode(ctx, code)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReferenceCode: booking ref=%s not found", code)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReferenceCode: repository error for ref=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByReferenceCode - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings returns an authenticated user's booking history.
func (s *Service) GetUserBookings(ctx context.Context, userID int64) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetGuestBookings returns the booking history made under a guest email.
func (s *Service) GetGuestBookings(ctx context.Context, email string) (*models.BookingListResponse, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByGuestEmail(ctx, email)
	if err != nil {
		s.logger.Error("GetGuestBookings: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: GetGuestBookings - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus moves a booking forward through its lifecycle: confirm,
// complete or mark as no-show. Cancellation has its own flow with deadline
// policy and capacity release. Completion updates the interviewer's rolling
// counters in the same transaction and reports member-interview outcomes to
// ProfileService afterwards.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d -> %s", id, req.Status)

	target := domain.BookingStatus(req.Status)
	if !target.IsValid() {
		s.logger.Warn("UpdateStatus: unknown status=%s for booking id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}
	if target == domain.StatusBooked || target == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: status %s is not reachable through this operation", ErrInvalidTransition, target)
	}

	var updated *domain.AppointmentBooking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}

		if !booking.CanTransitionTo(target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
		}

		switch target {
		case domain.StatusConfirmed:
			err = s.bookingRepo.Confirm(txCtx, booking.ID)
		case domain.StatusCompleted:
			err = s.complete(txCtx, booking, req)
		case domain.StatusNoShow:
			// The seat is not released: the requester consumed it by not
			// showing up.
			err = s.bookingRepo.MarkNoShow(txCtx, booking.ID)
		}
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return fmt.Errorf("%w: booking changed concurrently", ErrInvalidTransition)
			}
			return err
		}

		updated, err = s.bookingRepo.GetByID(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: UpdateStatus - reload booking: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("UpdateStatus: booking id=%d: %v", id, err)
		} else {
			s.logger.Error("UpdateStatus: booking id=%d: %v", id, err)
		}
		return nil, err
	}

	if target == domain.StatusCompleted {
		s.reportCompletion(ctx, updated)
	}

	s.logger.Info("UpdateStatus: booking id=%d now %s", id, updated.Status)
	return models.FromDomainBooking(updated), nil
}

func (s *Service) complete(ctx context.Context, booking *domain.AppointmentBooking, req *models.UpdateStatusRequest) error {
	outcome := domain.OutcomeUndecided
	if req.Outcome != nil {
		outcome = domain.BookingOutcome(*req.Outcome)
		if !outcome.IsValid() {
			return fmt.Errorf("%w: unknown outcome %q", ErrInvalidInput, *req.Outcome)
		}
	}
	if req.Rating != nil && (*req.Rating < domain.MinRating || *req.Rating > domain.MaxRating) {
		return fmt.Errorf("%w: rating out of range", ErrInvalidInput)
	}

	if err := s.bookingRepo.Complete(ctx, booking.ID, outcome, req.Rating, req.Feedback); err != nil {
		return err
	}

	// The slot cannot have been deleted while the booking was active, so
	// the interviewer lookup through it is safe.
	slot, err := s.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil {
		return fmt.Errorf("%w: complete - load slot: %w", ErrInternal, err)
	}
	if err := s.interviewerRepo.RecordCompletion(ctx, slot.InterviewerID, req.Rating); err != nil {
		return fmt.Errorf("%w: complete - record completion: %w", ErrInternal, err)
	}
	return nil
}

// reportCompletion pushes an approved member-interview outcome to
// ProfileService. Rejected and undecided interviews change nothing on the
// member's profile, so only approvals are delivered. Failures degrade
// gracefully; the completed booking stands either way.
func (s *Service) reportCompletion(ctx context.Context, booking *domain.AppointmentBooking) {
	if booking.AppointmentType != domain.TypeMemberInterview || booking.UserID == nil || booking.Outcome == nil {
		return
	}
	if *booking.Outcome != domain.OutcomeApproved {
		return
	}

	err := s.profileClient.ReportInterviewResultWithGracefulDegradation(ctx, profileservice.InterviewResult{
		UserID:    *booking.UserID,
		BookingID: booking.ID,
		Outcome:   string(*booking.Outcome),
	})
	if err != nil {
		s.logger.Warn("reportCompletion: result for booking id=%d not delivered: %v", booking.ID, err)
	}
}

// MarkReminded bumps the reminder counter on an active booking, refusing
// once the per-booking cap is reached.
func (s *Service) MarkReminded(ctx context.Context, id int64) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("MarkReminded: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("MarkReminded: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkReminded - repository error: %w", ErrInternal, err)
	}

	if booking.RemindersSent >= domain.DefaultMaxRemindersPerBooking {
		s.logger.Warn("MarkReminded: booking id=%d already received %d reminders", id, booking.RemindersSent)
		return ErrReminderLimit
	}

	if err := s.bookingRepo.IncrementReminders(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			return fmt.Errorf("%w: booking is no longer active", ErrInvalidTransition)
		}
		s.logger.Error("MarkReminded: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkReminded - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("MarkReminded: booking id=%d reminders=%d", id, booking.RemindersSent+1)
	return nil
}

// DueReminders returns active bookings scheduled inside the window that
// have not yet hit the reminder cap.
func (s *Service) DueReminders(ctx context.Context, req *models.ReminderWindowRequest) (*models.BookingListResponse, error) {
	if req.ToDate.Before(req.FromDate) {
		return nil, fmt.Errorf("%w: window end precedes start", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.DueReminders(ctx, domain.ReminderFilter{
		FromDate:     req.FromDate,
		ToDate:       req.ToDate,
		MaxReminders: domain.DefaultMaxRemindersPerBooking,
	})
	if err != nil {
		s.logger.Error("DueReminders: repository error: %v", err)
		return nil, fmt.Errorf("%w: DueReminders - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}
