package domain

import (
	"time"

	"github.com/memberhq/SMP-AppointmentService/pkg/types"
)

// AppointmentSlot is a concrete, dated, capacity-bounded bookable time
// window offered by one interviewer.
type AppointmentSlot struct {
	ID              int64
	InterviewerID   int64
	SlotDate        time.Time // calendar date, time part zero
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	AppointmentType AppointmentType
	Timezone        string // IANA label, stored as-is

	Capacity    int
	BookedCount int
	IsAvailable bool

	RequiresApproval          bool
	CancellationDeadlineHours int

	// ParentSlotID links slots generated in one recurring batch to the
	// first slot of the batch.
	ParentSlotID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFull reports whether every seat of the slot is taken.
func (s *AppointmentSlot) IsFull() bool {
	return s.BookedCount >= s.Capacity
}

// IsBookable reports whether the slot is offered to requesters: it must be
// flagged available and have spare capacity.
func (s *AppointmentSlot) IsBookable() bool {
	return s.IsAvailable && !s.IsFull()
}

// RemainingCapacity returns the number of free seats, never negative.
func (s *AppointmentSlot) RemainingCapacity() int {
	remaining := s.Capacity - s.BookedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// StartsAt combines the slot date and start time into a timestamp in the
// slot's timezone, falling back to UTC when the label does not resolve.
func (s *AppointmentSlot) StartsAt() time.Time {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return s.StartTime.OnDate(s.SlotDate, loc)
}

// OverlapsWith reports whether two slots on the same date collide in time.
// Slots on different dates or different interviewers never conflict.
func (s *AppointmentSlot) OverlapsWith(other *AppointmentSlot) bool {
	if s.InterviewerID != other.InterviewerID || !SameDay(s.SlotDate, other.SlotDate) {
		return false
	}
	return RangesOverlap(s.StartTime, s.EndTime, other.StartTime, other.EndTime)
}

// SlotRangeFilter selects slots of one interviewer over a date range,
// optionally narrowed to one appointment type.
type SlotRangeFilter struct {
	InterviewerID   int64
	FromDate        time.Time
	ToDate          time.Time
	AppointmentType *AppointmentType
	OnlyBookable    bool // is_available AND booked_count < capacity
}

// StatsRangeFilter selects slots or bookings for statistics rollups.
type StatsRangeFilter struct {
	FromDate        time.Time
	ToDate          time.Time
	AppointmentType *AppointmentType
}
