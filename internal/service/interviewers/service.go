package interviewers

import (
	"context"
	"errors"
	"fmt"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	interviewerRepo "github.com/memberhq/SMP-AppointmentService/internal/infra/storage/interviewer"
	"github.com/memberhq/SMP-AppointmentService/internal/service/interviewers/models"
)

// Service manages interviewer profiles and their weekly availability templates.
type Service struct {
	interviewerRepo InterviewerRepository
	logger          Logger
}

// NewService creates an interviewer service.
func NewService(interviewerRepo InterviewerRepository, logger Logger) *Service {
	return &Service{
		interviewerRepo: interviewerRepo,
		logger:          logger,
	}
}

// Create registers a new interviewer. Omitted scheduling settings fall back
// to the engine defaults.
func (s *Service) Create(ctx context.Context, req *models.CreateInterviewerRequest) (*models.InterviewerResponse, error) {
	s.logger.Info("Create: registering interviewer email=%s", req.Email)

	interviewer, err := buildInterviewer(req)
	if err != nil {
		s.logger.Warn("Create: validation failed for email=%s: %v", req.Email, err)
		return nil, err
	}

	created, err := s.interviewerRepo.Create(ctx, interviewer)
	if err != nil {
		if errors.Is(err, interviewerRepo.ErrDuplicateEmail) {
			s.logger.Warn("Create: email=%s already registered", req.Email)
			return nil, ErrDuplicateEmail
		}
		s.logger.Error("Create: repository error for email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: registered interviewer id=%d", created.ID)
	return models.FromDomainInterviewer(created), nil
}

// GetByID fetches one interviewer.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.InterviewerResponse, error) {
	interviewer, err := s.interviewerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interviewerRepo.ErrInterviewerNotFound) {
			s.logger.Warn("GetByID: interviewer id=%d not found", id)
			return nil, ErrInterviewerNotFound
		}
		s.logger.Error("GetByID: repository error for interviewer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainInterviewer(interviewer), nil
}

// ListActive returns every active interviewer.
func (s *Service) ListActive(ctx context.Context) (*models.InterviewerListResponse, error) {
	interviewers, err := s.interviewerRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainInterviewerList(interviewers), nil
}

// Update rewrites the interviewer's profile and availability template.
// Existing slots are not regenerated; the new template applies to slots
// created afterwards.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateInterviewerRequest) (*models.InterviewerResponse, error) {
	s.logger.Info("Update: updating interviewer id=%d", id)

	current, err := s.interviewerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interviewerRepo.ErrInterviewerNotFound) {
			s.logger.Warn("Update: interviewer id=%d not found", id)
			return nil, ErrInterviewerNotFound
		}
		s.logger.Error("Update: repository error for interviewer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	if err := applyUpdate(current, req); err != nil {
		s.logger.Warn("Update: validation failed for interviewer id=%d: %v", id, err)
		return nil, err
	}

	if err := s.interviewerRepo.Update(ctx, current); err != nil {
		if errors.Is(err, interviewerRepo.ErrInterviewerNotFound) {
			return nil, ErrInterviewerNotFound
		}
		s.logger.Error("Update: repository error for interviewer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Update: updated interviewer id=%d", id)
	return models.FromDomainInterviewer(current), nil
}

// Deactivate withdraws the interviewer from booking. Existing slots and
// bookings are untouched.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	s.logger.Info("Deactivate: deactivating interviewer id=%d", id)

	err := s.interviewerRepo.SetActive(ctx, id, false)
	if err != nil {
		if errors.Is(err, interviewerRepo.ErrInterviewerNotFound) {
			s.logger.Warn("Deactivate: interviewer id=%d not found", id)
			return ErrInterviewerNotFound
		}
		s.logger.Error("Deactivate: repository error for interviewer id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Deactivate: deactivated interviewer id=%d", id)
	return nil
}

func buildInterviewer(req *models.CreateInterviewerRequest) (*domain.Interviewer, error) {
	if req.Name == "" || req.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}

	appointmentTypes, err := parseAppointmentTypes(req.AppointmentTypes)
	if err != nil {
		return nil, err
	}
	interviewModes, err := parseInterviewModes(req.InterviewModes)
	if err != nil {
		return nil, err
	}

	weekly, err := req.WeeklyAvailability.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	interviewer := &domain.Interviewer{
		Name:                 req.Name,
		Email:                req.Email,
		AppointmentTypes:     appointmentTypes,
		InterviewModes:       interviewModes,
		WeeklyAvailability:   weekly,
		BufferMinutes:        domain.DefaultBufferMinutes,
		MaxDailyAppointments: domain.DefaultMaxDailyAppointments,
		AdvanceBookingDays:   domain.DefaultAdvanceBookingDays,
		AutoApprove:          req.AutoApprove,
		IsActive:             true,
	}

	if req.BufferMinutes != nil {
		interviewer.BufferMinutes = *req.BufferMinutes
	}
	if req.MaxDailyAppointments != nil {
		interviewer.MaxDailyAppointments = *req.MaxDailyAppointments
	}
	if req.AdvanceBookingDays != nil {
		interviewer.AdvanceBookingDays = *req.AdvanceBookingDays
	}

	if interviewer.BufferMinutes < 0 || interviewer.MaxDailyAppointments < 1 || interviewer.AdvanceBookingDays < 1 {
		return nil, fmt.Errorf("%w: scheduling settings out of range", ErrInvalidInput)
	}

	return interviewer, nil
}

func applyUpdate(i *domain.Interviewer, req *models.UpdateInterviewerRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	appointmentTypes, err := parseAppointmentTypes(req.AppointmentTypes)
	if err != nil {
		return err
	}
	interviewModes, err := parseInterviewModes(req.InterviewModes)
	if err != nil {
		return err
	}

	weekly, err := req.WeeklyAvailability.ToDomain()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	i.Name = req.Name
	i.AppointmentTypes = appointmentTypes
	i.InterviewModes = interviewModes
	i.WeeklyAvailability = weekly
	i.AutoApprove = req.AutoApprove

	if req.BufferMinutes != nil {
		i.BufferMinutes = *req.BufferMinutes
	}
	if req.MaxDailyAppointments != nil {
		i.MaxDailyAppointments = *req.MaxDailyAppointments
	}
	if req.AdvanceBookingDays != nil {
		i.AdvanceBookingDays = *req.AdvanceBookingDays
	}

	if i.BufferMinutes < 0 || i.MaxDailyAppointments < 1 || i.AdvanceBookingDays < 1 {
		return fmt.Errorf("%w: scheduling settings out of range", ErrInvalidInput)
	}

	return nil
}

func parseAppointmentTypes(raw []string) ([]domain.AppointmentType, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: at least one appointment type is required", ErrInvalidInput)
	}
	out := make([]domain.AppointmentType, 0, len(raw))
	for _, t := range raw {
		at := domain.AppointmentType(t)
		if !at.IsValid() {
			return nil, fmt.Errorf("%w: unknown appointment type %q", ErrInvalidInput, t)
		}
		out = append(out, at)
	}
	return out, nil
}

func parseInterviewModes(raw []string) ([]domain.InterviewMode, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: at least one interview mode is required", ErrInvalidInput)
	}
	out := make([]domain.InterviewMode, 0, len(raw))
	for _, m := range raw {
		im := domain.InterviewMode(m)
		if !im.IsValid() {
			return nil, fmt.Errorf("%w: unknown interview mode %q", ErrInvalidInput, m)
		}
		out = append(out, im)
	}
	return out, nil
}
