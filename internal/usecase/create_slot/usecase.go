package create_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	interviewerRepo "github.com/memberhq/SMP-AppointmentService/internal/infra/storage/interviewer"
	slotModels "github.com/memberhq/SMP-AppointmentService/internal/service/slots/models"
	"github.com/memberhq/SMP-AppointmentService/pkg/types"
)

const (
	reasonClosed   = "interviewer not available on this date"
	reasonConflict = "overlaps an existing slot"
	reasonWindow   = "window too small for a sub-slot"
	reasonBreak    = "window overlaps a break"
)

// UseCase generates appointment slots: a single slot, a recurring series,
// or either of them split into duration-sized sub-slots.
type UseCase struct {
	slotRepo        SlotRepository
	interviewerRepo InterviewerRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the slot generation use case.
func NewUseCase(
	slotRepo SlotRepository,
	interviewerRepo InterviewerRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:        slotRepo,
		interviewerRepo: interviewerRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute expands the request into dated slots and persists them in one
// serializable transaction. Recurring batches succeed partially: dates the
// availability template closes or that collide with existing slots are
// skipped and reported, the rest are created. A batch where every date is
// skipped fails with ErrNothingCreated.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSlot: interviewer=%d, date=%s, window=%s-%s, type=%s, recurring=%t",
		req.InterviewerID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime,
		req.AppointmentType, req.Recurrence != nil)

	now := uc.timeProvider.Now()

	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateSlot: validation failed: %v", err)
		return nil, err
	}

	interviewer, err := uc.interviewerRepo.GetByID(ctx, req.InterviewerID)
	if err != nil {
		if errors.Is(err, interviewerRepo.ErrInterviewerNotFound) {
			uc.logger.Warn("CreateSlot: interviewer id=%d not found", req.InterviewerID)
			return nil, ErrInterviewerNotFound
		}
		uc.logger.Error("CreateSlot: failed to get interviewer id=%d: %v", req.InterviewerID, err)
		return nil, fmt.Errorf("%w: failed to get interviewer: %w", ErrInternal, err)
	}

	if !interviewer.IsActive {
		uc.logger.Warn("CreateSlot: interviewer id=%d is inactive", req.InterviewerID)
		return nil, ErrInterviewerInactive
	}
	if !interviewer.SupportsType(domain.AppointmentType(req.AppointmentType)) {
		uc.logger.Warn("CreateSlot: interviewer id=%d does not offer type=%s", req.InterviewerID, req.AppointmentType)
		return nil, ErrTypeNotOffered
	}

	dates, err := uc.expandDates(req)
	if err != nil {
		uc.logger.Warn("CreateSlot: recurrence expansion failed: %v", err)
		return nil, err
	}

	var created []*domain.AppointmentSlot
	var skipped []SkippedDate

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = created[:0]
		skipped = skipped[:0]

		var parentID *int64
		for _, date := range dates {
			// The coarse gate checks open hours only; breaks are handled
			// per candidate window so sub-slots can wrap around them.
			day := interviewer.WeeklyAvailability.Day(date.Weekday())
			if !day.WithinHours(req.StartTime, req.EndTime) {
				skipped = append(skipped, SkippedDate{
					Date:   date.Format(domain.DateFormat),
					Reason: reasonClosed,
				})
				continue
			}

			existing, err := uc.slotRepo.ListByInterviewerAndDate(txCtx, req.InterviewerID, date)
			if err != nil {
				return fmt.Errorf("%w: failed to list existing slots: %w", ErrInternal, err)
			}

			windows, reason := uc.planWindows(req, interviewer, day, existing)
			if reason != "" {
				skipped = append(skipped, SkippedDate{
					Date:   date.Format(domain.DateFormat),
					Reason: reason,
				})
				continue
			}

			for _, w := range windows {
				slot := uc.buildSlot(req, interviewer, date, w.start, w.end, parentID)
				saved, err := uc.slotRepo.Create(txCtx, slot)
				if err != nil {
					return fmt.Errorf("%w: failed to create slot: %w", ErrInternal, err)
				}
				if parentID == nil {
					id := saved.ID
					parentID = &id
				}
				created = append(created, saved)
			}
		}

		if len(created) == 0 {
			return ErrNothingCreated
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNothingCreated) {
			uc.logger.Warn("CreateSlot: every date skipped for interviewer=%d", req.InterviewerID)
			return nil, fmt.Errorf("%w: %s", ErrNothingCreated, summarize(skipped))
		}
		return nil, err
	}

	uc.logger.Info("CreateSlot: created %d slots, skipped %d dates for interviewer=%d",
		len(created), len(skipped), req.InterviewerID)

	resp := &Response{Skipped: skipped}
	for _, s := range created {
		resp.Created = append(resp.Created, slotModels.FromDomainSlot(s))
	}
	return resp, nil
}

// expandDates turns the request into the ordered list of candidate dates.
func (uc *UseCase) expandDates(req *Request) ([]time.Time, error) {
	if req.Recurrence == nil {
		return []time.Time{domain.DateOnly(req.Date)}, nil
	}

	pattern, err := buildPattern(req.Recurrence)
	if err != nil {
		return nil, err
	}
	return pattern.Occurrences(req.Date), nil
}

type window struct {
	start, end types.TimeString
}

// planWindows lays out the slot windows for one date and verifies none of
// them collides with an existing slot. A single full-window slot overlapping
// a break skips the date; during sub-slot expansion only the candidates that
// land on a break are discarded, the rest of the window is kept. The
// interviewer's buffer pads both the gap between generated sub-slots and the
// comparison against existing slots.
func (uc *UseCase) planWindows(req *Request, interviewer *domain.Interviewer, day domain.DayAvailability, existing []*domain.AppointmentSlot) ([]window, string) {
	var windows []window

	if req.SlotDurationMinutes == nil {
		if day.OverlapsBreak(req.StartTime, req.EndTime) {
			return nil, reasonBreak
		}
		windows = []window{{start: req.StartTime, end: req.EndTime}}
	} else {
		duration := *req.SlotDurationMinutes
		cursor := req.StartTime
		onBreak := false
		for {
			end, err := cursor.AddMinutes(duration)
			if err != nil || end.IsAfter(req.EndTime) {
				break
			}
			if day.OverlapsBreak(cursor, end) {
				onBreak = true
			} else {
				windows = append(windows, window{start: cursor, end: end})
			}

			next, err := end.AddMinutes(interviewer.BufferMinutes)
			if err != nil {
				break
			}
			cursor = next
		}
		if len(windows) == 0 {
			if onBreak {
				return nil, reasonBreak
			}
			return nil, reasonWindow
		}
	}

	for _, w := range windows {
		padStart, padEnd := domain.PadRange(w.start, w.end, interviewer.BufferMinutes)
		for _, ex := range existing {
			if domain.RangesOverlap(padStart, padEnd, ex.StartTime, ex.EndTime) {
				return nil, reasonConflict
			}
		}
	}
	return windows, ""
}

func (uc *UseCase) buildSlot(req *Request, interviewer *domain.Interviewer, date time.Time, start, end types.TimeString, parentID *int64) *domain.AppointmentSlot {
	capacity := domain.DefaultCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	deadline := domain.DefaultCancellationDeadlineHours
	if req.CancellationDeadlineHours != nil {
		deadline = *req.CancellationDeadlineHours
	}
	requiresApproval := !interviewer.AutoApprove
	if req.RequiresApproval != nil {
		requiresApproval = *req.RequiresApproval
	}

	return &domain.AppointmentSlot{
		InterviewerID:             req.InterviewerID,
		SlotDate:                  date,
		StartTime:                 start,
		EndTime:                   end,
		DurationMinutes:           start.MinutesUntil(end),
		AppointmentType:           domain.AppointmentType(req.AppointmentType),
		Timezone:                  req.Timezone,
		Capacity:                  capacity,
		BookedCount:               0,
		IsAvailable:               true,
		RequiresApproval:          requiresApproval,
		CancellationDeadlineHours: deadline,
		ParentSlotID:              parentID,
	}
}

func summarize(skipped []SkippedDate) string {
	if len(skipped) == 0 {
		return "no candidate dates"
	}
	return fmt.Sprintf("%d dates skipped, first: %s (%s)", len(skipped), skipped[0].Date, skipped[0].Reason)
}
