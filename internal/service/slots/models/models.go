package models

import (
	"time"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
)

// Request models

// ListSlotsRequest selects an interviewer's slots over a date range.
type ListSlotsRequest struct {
	InterviewerID   int64
	FromDate        time.Time
	ToDate          time.Time
	AppointmentType *string
	OnlyBookable    bool
}

// UpdateSlotRequest rewrites a slot's mutable fields. Nil means keep.
type UpdateSlotRequest struct {
	StartTime                 *string `json:"startTime,omitempty"` // "10:00"
	EndTime                   *string `json:"endTime,omitempty"`
	Capacity                  *int    `json:"capacity,omitempty"`
	IsAvailable               *bool   `json:"isAvailable,omitempty"`
	RequiresApproval          *bool   `json:"requiresApproval,omitempty"`
	CancellationDeadlineHours *int    `json:"cancellationDeadlineHours,omitempty"`
}

// Response models

// SlotResponse is the wire form of an appointment slot.
type SlotResponse struct {
	ID                        int64     `json:"id"`
	InterviewerID             int64     `json:"interviewerId"`
	SlotDate                  string    `json:"slotDate"`  // "2026-09-15"
	StartTime                 string    `json:"startTime"` // "10:00"
	EndTime                   string    `json:"endTime"`   // "11:00"
	DurationMinutes           int       `json:"durationMinutes"`
	AppointmentType           string    `json:"appointmentType"`
	Timezone                  string    `json:"timezone"`
	Capacity                  int       `json:"capacity"`
	BookedCount               int       `json:"bookedCount"`
	RemainingCapacity         int       `json:"remainingCapacity"`
	IsAvailable               bool      `json:"isAvailable"`
	RequiresApproval          bool      `json:"requiresApproval"`
	CancellationDeadlineHours int       `json:"cancellationDeadlineHours"`
	ParentSlotID              *int64    `json:"parentSlotId,omitempty"`
	CreatedAt                 time.Time `json:"createdAt"`
	UpdatedAt                 time.Time `json:"updatedAt"`
}

// SlotListResponse wraps a list of slots.
type SlotListResponse struct {
	Slots []*SlotResponse `json:"slots"`
}

// FromDomainSlot converts a domain slot to wire form.
func FromDomainSlot(s *domain.AppointmentSlot) *SlotResponse {
	return &SlotResponse{
		ID:                        s.ID,
		InterviewerID:             s.InterviewerID,
		SlotDate:                  s.SlotDate.Format(domain.DateFormat),
		StartTime:                 s.StartTime.String(),
		EndTime:                   s.EndTime.String(),
		DurationMinutes:           s.DurationMinutes,
		AppointmentType:           string(s.AppointmentType),
		Timezone:                  s.Timezone,
		Capacity:                  s.Capacity,
		BookedCount:               s.BookedCount,
		RemainingCapacity:         s.RemainingCapacity(),
		IsAvailable:               s.IsAvailable,
		RequiresApproval:          s.RequiresApproval,
		CancellationDeadlineHours: s.CancellationDeadlineHours,
		ParentSlotID:              s.ParentSlotID,
		CreatedAt:                 s.CreatedAt,
		UpdatedAt:                 s.UpdatedAt,
	}
}

// FromDomainSlotList converts a list of domain slots.
func FromDomainSlotList(slots []*domain.AppointmentSlot) *SlotListResponse {
	out := make([]*SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, FromDomainSlot(s))
	}
	return &SlotListResponse{Slots: out}
}
