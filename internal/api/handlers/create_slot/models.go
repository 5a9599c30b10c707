package create_slot

import (
	"time"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	createSlot "github.com/memberhq/SMP-AppointmentService/internal/usecase/create_slot"
	"github.com/memberhq/SMP-AppointmentService/pkg/types"
)

// RecurrencePayload describes how the slot template repeats.
type RecurrencePayload struct {
	Type           string  `json:"type"` // daily, weekly, monthly
	Interval       int     `json:"interval"`
	DaysOfWeek     []int   `json:"daysOfWeek,omitempty"` // 0=Sunday .. 6=Saturday
	EndDate        *string `json:"endDate,omitempty"`    // "2026-12-31", inclusive
	MaxOccurrences *int    `json:"maxOccurrences,omitempty"`
}

// CreateSlotRequest is the HTTP request model.
type CreateSlotRequest struct {
	InterviewerID   int64  `json:"interviewerId"`
	Date            string `json:"date"`      // "2026-09-15"
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`   // "17:00"
	AppointmentType string `json:"appointmentType"`
	Timezone        string `json:"timezone"`

	Capacity                  *int  `json:"capacity,omitempty"`
	RequiresApproval          *bool `json:"requiresApproval,omitempty"`
	CancellationDeadlineHours *int  `json:"cancellationDeadlineHours,omitempty"`
	SlotDurationMinutes       *int  `json:"slotDurationMinutes,omitempty"`

	Recurrence *RecurrencePayload `json:"recurrence,omitempty"`
}

// ToUseCaseRequest parses the dates and times into the use case model.
func (r *CreateSlotRequest) ToUseCaseRequest() (*createSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	req := &createSlot.Request{
		InterviewerID:             r.InterviewerID,
		Date:                      date,
		StartTime:                 startTime,
		EndTime:                   endTime,
		AppointmentType:           r.AppointmentType,
		Timezone:                  r.Timezone,
		Capacity:                  r.Capacity,
		RequiresApproval:          r.RequiresApproval,
		CancellationDeadlineHours: r.CancellationDeadlineHours,
		SlotDurationMinutes:       r.SlotDurationMinutes,
	}

	if r.Recurrence != nil {
		rec := &createSlot.Recurrence{
			Type:           r.Recurrence.Type,
			Interval:       r.Recurrence.Interval,
			DaysOfWeek:     r.Recurrence.DaysOfWeek,
			MaxOccurrences: r.Recurrence.MaxOccurrences,
		}
		if r.Recurrence.EndDate != nil {
			end, err := time.Parse(domain.DateFormat, *r.Recurrence.EndDate)
			if err != nil {
				return nil, err
			}
			rec.EndDate = &end
		}
		req.Recurrence = rec
	}

	return req, nil
}
