package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/memberhq/SMP-AppointmentService/pkg/types"
)

// AppointmentType distinguishes the kinds of appointments the engine schedules.
type AppointmentType string

const (
	TypeConsultation    AppointmentType = "consultation"
	TypeMemberInterview AppointmentType = "member_interview"
)

// IsValid reports whether t is a known appointment type.
func (t AppointmentType) IsValid() bool {
	return t == TypeConsultation || t == TypeMemberInterview
}

// InterviewMode is the delivery channel of an appointment.
type InterviewMode string

const (
	ModeVideo    InterviewMode = "video"
	ModePhone    InterviewMode = "phone"
	ModeInPerson InterviewMode = "in_person"
)

// IsValid reports whether m is a known interview mode.
func (m InterviewMode) IsValid() bool {
	return m == ModeVideo || m == ModePhone || m == ModeInPerson
}

// Interviewer is a member of staff who offers bookable appointment slots.
type Interviewer struct {
	ID                 int64
	Name               string
	Email              string
	AppointmentTypes   []AppointmentType
	InterviewModes     []InterviewMode
	WeeklyAvailability WeeklyAvailability

	BufferMinutes        int // gap inserted between generated slots
	MaxDailyAppointments int
	AdvanceBookingDays   int
	AutoApprove          bool

	// Rolling performance counters, updated on booking completion.
	TotalAppointments     int
	CompletedAppointments int
	AverageRating         float64

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SupportsType reports whether the interviewer offers the given appointment type.
func (i *Interviewer) SupportsType(t AppointmentType) bool {
	for _, at := range i.AppointmentTypes {
		if at == t {
			return true
		}
	}
	return false
}

// BreakInterval is a half-open [StartTime, EndTime) pause inside a working day.
type BreakInterval struct {
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// DayAvailability is one weekday entry of an interviewer's weekly template.
type DayAvailability struct {
	Enabled   bool             `json:"enabled"`
	OpenTime  types.TimeString `json:"openTime"`
	CloseTime types.TimeString `json:"closeTime"`
	Breaks    []BreakInterval  `json:"breaks,omitempty"`
}

// WithinHours reports whether the half-open candidate range [start, end)
// fits entirely inside the open window, ignoring breaks. Slot generation
// uses this coarse gate so sub-slots can still be laid out around breaks.
func (d DayAvailability) WithinHours(start, end types.TimeString) bool {
	if !d.Enabled {
		return false
	}
	if !start.IsBefore(end) {
		return false
	}
	return !start.IsBefore(d.OpenTime) && !end.IsAfter(d.CloseTime)
}

// OverlapsBreak reports whether [start, end) intersects any break interval.
// A candidate that touches a break boundary exactly does not overlap: break
// intervals are half-open too, so [12:00,13:00) against a break [13:00,14:00)
// is allowed.
func (d DayAvailability) OverlapsBreak(start, end types.TimeString) bool {
	for _, br := range d.Breaks {
		if RangesOverlap(start, end, br.StartTime, br.EndTime) {
			return true
		}
	}
	return false
}

// IsOpenFor reports whether the half-open candidate range [start, end) fits
// entirely inside the open window and does not overlap any break.
func (d DayAvailability) IsOpenFor(start, end types.TimeString) bool {
	return d.WithinHours(start, end) && !d.OverlapsBreak(start, end)
}

// WeeklyAvailability maps weekdays to availability entries. Missing weekdays
// are treated as disabled.
type WeeklyAvailability map[time.Weekday]DayAvailability

// Day returns the entry for the given weekday, disabled when absent.
func (w WeeklyAvailability) Day(d time.Weekday) DayAvailability {
	if w == nil {
		return DayAvailability{}
	}
	return w[d]
}

// IsOpenOn reports whether [start, end) is bookable on the weekday of date.
func (w WeeklyAvailability) IsOpenOn(date time.Time, start, end types.TimeString) bool {
	return w.Day(date.Weekday()).IsOpenFor(start, end)
}

// Value stores the weekly template as a JSONB document.
func (w WeeklyAvailability) Value() (driver.Value, error) {
	if w == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(w)
}

// Scan reads the weekly template back from its JSONB representation.
func (w *WeeklyAvailability) Scan(src any) error {
	if src == nil {
		*w = WeeklyAvailability{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("weekly availability: cannot scan %T", src)
	}
	return json.Unmarshal(data, w)
}
