package models

import (
	"errors"
	"strings"
	"time"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	"github.com/memberhq/SMP-AppointmentService/pkg/types"
)

var (
	// ErrInvalidWeekday is returned on an unknown weekday name.
	ErrInvalidWeekday = errors.New("invalid weekday name")

	// ErrInvalidTime is returned on a malformed HH:MM value.
	ErrInvalidTime = errors.New("invalid time value")
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Request models

// BreakPayload is one break interval of a working day.
type BreakPayload struct {
	StartTime string `json:"startTime"` // "12:00"
	EndTime   string `json:"endTime"`   // "13:00"
}

// DayPayload is one weekday entry of the weekly availability template.
type DayPayload struct {
	Enabled   bool           `json:"enabled"`
	OpenTime  string         `json:"openTime,omitempty"`
	CloseTime string         `json:"closeTime,omitempty"`
	Breaks    []BreakPayload `json:"breaks,omitempty"`
}

// AvailabilityPayload maps lowercase weekday names to day entries.
type AvailabilityPayload map[string]DayPayload

// ToDomain converts the wire template into the domain weekly template.
func (p AvailabilityPayload) ToDomain() (domain.WeeklyAvailability, error) {
	weekly := make(domain.WeeklyAvailability, len(p))
	for name, day := range p {
		weekday, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return nil, ErrInvalidWeekday
		}

		entry := domain.DayAvailability{Enabled: day.Enabled}
		if day.Enabled {
			open, err := types.NewTimeStringFromString(day.OpenTime)
			if err != nil {
				return nil, ErrInvalidTime
			}
			closeTime, err := types.NewTimeStringFromString(day.CloseTime)
			if err != nil {
				return nil, ErrInvalidTime
			}
			entry.OpenTime = open
			entry.CloseTime = closeTime

			for _, br := range day.Breaks {
				start, err := types.NewTimeStringFromString(br.StartTime)
				if err != nil {
					return nil, ErrInvalidTime
				}
				end, err := types.NewTimeStringFromString(br.EndTime)
				if err != nil {
					return nil, ErrInvalidTime
				}
				entry.Breaks = append(entry.Breaks, domain.BreakInterval{StartTime: start, EndTime: end})
			}
		}
		weekly[weekday] = entry
	}
	return weekly, nil
}

// FromDomainAvailability converts the domain template back to wire form.
func FromDomainAvailability(w domain.WeeklyAvailability) AvailabilityPayload {
	payload := make(AvailabilityPayload, len(w))
	for weekday, day := range w {
		entry := DayPayload{
			Enabled:   day.Enabled,
			OpenTime:  day.OpenTime.String(),
			CloseTime: day.CloseTime.String(),
		}
		for _, br := range day.Breaks {
			entry.Breaks = append(entry.Breaks, BreakPayload{
				StartTime: br.StartTime.String(),
				EndTime:   br.EndTime.String(),
			})
		}
		payload[strings.ToLower(weekday.String())] = entry
	}
	return payload
}

// CreateInterviewerRequest registers a new interviewer.
type CreateInterviewerRequest struct {
	Name                 string              `json:"name"`
	Email                string              `json:"email"`
	AppointmentTypes     []string            `json:"appointmentTypes"`
	InterviewModes       []string            `json:"interviewModes"`
	WeeklyAvailability   AvailabilityPayload `json:"weeklyAvailability"`
	BufferMinutes        *int                `json:"bufferMinutes,omitempty"`
	MaxDailyAppointments *int                `json:"maxDailyAppointments,omitempty"`
	AdvanceBookingDays   *int                `json:"advanceBookingDays,omitempty"`
	AutoApprove          bool                `json:"autoApprove,omitempty"`
}

// UpdateInterviewerRequest rewrites an interviewer's profile and settings.
type UpdateInterviewerRequest struct {
	Name                 string              `json:"name"`
	AppointmentTypes     []string            `json:"appointmentTypes"`
	InterviewModes       []string            `json:"interviewModes"`
	WeeklyAvailability   AvailabilityPayload `json:"weeklyAvailability"`
	BufferMinutes        *int                `json:"bufferMinutes,omitempty"`
	MaxDailyAppointments *int                `json:"maxDailyAppointments,omitempty"`
	AdvanceBookingDays   *int                `json:"advanceBookingDays,omitempty"`
	AutoApprove          bool                `json:"autoApprove,omitempty"`
}

// Response models

// InterviewerResponse is the wire form of an interviewer.
type InterviewerResponse struct {
	ID                    int64               `json:"id"`
	Name                  string              `json:"name"`
	Email                 string              `json:"email"`
	AppointmentTypes      []string            `json:"appointmentTypes"`
	InterviewModes        []string            `json:"interviewModes"`
	WeeklyAvailability    AvailabilityPayload `json:"weeklyAvailability"`
	BufferMinutes         int                 `json:"bufferMinutes"`
	MaxDailyAppointments  int                 `json:"maxDailyAppointments"`
	AdvanceBookingDays    int                 `json:"advanceBookingDays"`
	AutoApprove           bool                `json:"autoApprove"`
	TotalAppointments     int                 `json:"totalAppointments"`
	CompletedAppointments int                 `json:"completedAppointments"`
	AverageRating         float64             `json:"averageRating"`
	IsActive              bool                `json:"isActive"`
	CreatedAt             time.Time           `json:"createdAt"`
	UpdatedAt             time.Time           `json:"updatedAt"`
}

// InterviewerListResponse wraps a list of interviewers.
type InterviewerListResponse struct {
	Interviewers []*InterviewerResponse `json:"interviewers"`
}

// FromDomainInterviewer converts a domain interviewer to wire form.
func FromDomainInterviewer(i *domain.Interviewer) *InterviewerResponse {
	appointmentTypes := make([]string, 0, len(i.AppointmentTypes))
	for _, t := range i.AppointmentTypes {
		appointmentTypes = append(appointmentTypes, string(t))
	}
	interviewModes := make([]string, 0, len(i.InterviewModes))
	for _, m := range i.InterviewModes {
		interviewModes = append(interviewModes, string(m))
	}

	return &InterviewerResponse{
		ID:                    i.ID,
		Name:                  i.Name,
		Email:                 i.Email,
		AppointmentTypes:      appointmentTypes,
		InterviewModes:        interviewModes,
		WeeklyAvailability:    FromDomainAvailability(i.WeeklyAvailability),
		BufferMinutes:         i.BufferMinutes,
		MaxDailyAppointments:  i.MaxDailyAppointments,
		AdvanceBookingDays:    i.AdvanceBookingDays,
		AutoApprove:           i.AutoApprove,
		TotalAppointments:     i.TotalAppointments,
		CompletedAppointments: i.CompletedAppointments,
		AverageRating:         i.AverageRating,
		IsActive:              i.IsActive,
		CreatedAt:             i.CreatedAt,
		UpdatedAt:             i.UpdatedAt,
	}
}

// FromDomainInterviewerList converts a list of domain interviewers.
func FromDomainInterviewerList(interviewers []*domain.Interviewer) *InterviewerListResponse {
	out := make([]*InterviewerResponse, 0, len(interviewers))
	for _, i := range interviewers {
		out = append(out, FromDomainInterviewer(i))
	}
	return &InterviewerListResponse{Interviewers: out}
}
