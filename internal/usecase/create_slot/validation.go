package create_slot

import (
	"fmt"
	"time"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
)

func validateRequest(req *Request, now time.Time) error {
	if req.InterviewerID <= 0 {
		return fmt.Errorf("%w: interviewerId is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %w", ErrInvalidTimeRange, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %w", ErrInvalidTimeRange, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must precede endTime", ErrInvalidTimeRange)
	}

	window := req.StartTime.MinutesUntil(req.EndTime)
	if window < domain.MinSlotDurationMinutes || window > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: window of %d minutes out of range", ErrInvalidTimeRange, window)
	}

	if !domain.AppointmentType(req.AppointmentType).IsValid() {
		return fmt.Errorf("%w: unknown appointment type %q", ErrInvalidInput, req.AppointmentType)
	}

	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
	}

	if domain.DateOnly(req.Date).Before(domain.DateOnly(now)) {
		return ErrInvalidDate
	}

	if req.Capacity != nil && (*req.Capacity < domain.MinCapacity || *req.Capacity > domain.MaxCapacity) {
		return fmt.Errorf("%w: capacity out of range", ErrInvalidInput)
	}
	if req.CancellationDeadlineHours != nil && *req.CancellationDeadlineHours < 0 {
		return fmt.Errorf("%w: cancellationDeadlineHours must not be negative", ErrInvalidInput)
	}

	if req.SlotDurationMinutes != nil {
		d := *req.SlotDurationMinutes
		if d < domain.MinSlotDurationMinutes || d > domain.MaxSlotDurationMinutes {
			return fmt.Errorf("%w: slotDurationMinutes out of range", ErrInvalidInput)
		}
		if d > window {
			return fmt.Errorf("%w: slotDurationMinutes exceeds the window", ErrInvalidInput)
		}
	}

	return nil
}

// buildPattern converts the wire recurrence into the validated domain value.
func buildPattern(rec *Recurrence) (*domain.RecurringPattern, error) {
	days := make([]time.Weekday, 0, len(rec.DaysOfWeek))
	for _, d := range rec.DaysOfWeek {
		days = append(days, time.Weekday(d))
	}

	var endDate *time.Time
	if rec.EndDate != nil {
		end := domain.DateOnly(*rec.EndDate)
		endDate = &end
	}

	pattern := &domain.RecurringPattern{
		Type:           domain.RecurrenceType(rec.Type),
		Interval:       rec.Interval,
		DaysOfWeek:     days,
		EndDate:        endDate,
		MaxOccurrences: rec.MaxOccurrences,
	}
	if err := pattern.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecurrence, err)
	}
	return pattern, nil
}
