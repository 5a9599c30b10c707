package create_slot

import (
	"time"

	"github.com/memberhq/SMP-AppointmentService/internal/service/slots/models"
	"github.com/memberhq/SMP-AppointmentService/pkg/types"
)

// Recurrence describes how the slot template repeats.
type Recurrence struct {
	Type           string     // daily, weekly, monthly
	Interval       int        // every N units, min 1
	DaysOfWeek     []int      // weekly only; 0=Sunday .. 6=Saturday
	EndDate        *time.Time // inclusive
	MaxOccurrences *int
}

// Request describes one slot template, optionally recurring and optionally
// split into duration-sized sub-slots.
type Request struct {
	InterviewerID   int64
	Date            time.Time // first (or only) slot date
	StartTime       types.TimeString
	EndTime         types.TimeString
	AppointmentType string
	Timezone        string

	Capacity                  *int
	RequiresApproval          *bool
	CancellationDeadlineHours *int

	// SlotDurationMinutes splits the window into consecutive sub-slots of
	// this length, separated by the interviewer's buffer. Nil keeps the
	// whole window as one slot.
	SlotDurationMinutes *int

	Recurrence *Recurrence
}

// SkippedDate records one generated date that produced no slot.
type SkippedDate struct {
	Date   string `json:"date"` // "2026-09-15"
	Reason string `json:"reason"`
}

// Response reports the batch outcome. A recurring request succeeds
// partially: conflicting or closed dates are skipped and reported, the rest
// are created.
type Response struct {
	Created []*models.SlotResponse `json:"created"`
	Skipped []SkippedDate          `json:"skipped,omitempty"`
}
