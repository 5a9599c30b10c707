package models

import (
	"time"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
)

// Request models

// UpdateStatusRequest moves a booking through its lifecycle. Outcome,
// rating and feedback only apply when the target status is completed.
type UpdateStatusRequest struct {
	Status   string  `json:"status"`
	Outcome  *string `json:"outcome,omitempty"` // approved, rejected, undecided
	Rating   *int    `json:"rating,omitempty"`  // 1..5
	Feedback *string `json:"feedback,omitempty"`
}

// ReminderWindowRequest selects bookings due a reminder.
type ReminderWindowRequest struct {
	FromDate time.Time
	ToDate   time.Time
}

// Response models

// BookingResponse is the wire form of a booking.
type BookingResponse struct {
	ID            int64  `json:"id"`
	ReferenceCode string `json:"referenceCode"`
	SlotID        int64  `json:"slotId"`

	UserID     *int64  `json:"userId,omitempty"`
	GuestName  *string `json:"guestName,omitempty"`
	GuestEmail *string `json:"guestEmail,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`

	AppointmentType string `json:"appointmentType"`
	ScheduledDate   string `json:"scheduledDate"` // "2026-09-15"
	ScheduledTime   string `json:"scheduledTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Timezone        string `json:"timezone"`

	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`

	ConfirmedAt        *time.Time `json:"confirmedAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`

	Outcome  *string `json:"outcome,omitempty"`
	Rating   *int    `json:"rating,omitempty"`
	Feedback *string `json:"feedback,omitempty"`

	RemindersSent   int `json:"remindersSent"`
	RescheduleCount int `json:"rescheduleCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse wraps a list of bookings.
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
}

// FromDomainBooking converts a domain booking to wire form.
func FromDomainBooking(b *domain.AppointmentBooking) *BookingResponse {
	resp := &BookingResponse{
		ID:                 b.ID,
		ReferenceCode:      b.ReferenceCode.String(),
		SlotID:             b.SlotID,
		UserID:             b.UserID,
		GuestName:          b.GuestName,
		GuestEmail:         b.GuestEmail,
		GuestPhone:         b.GuestPhone,
		AppointmentType:    string(b.AppointmentType),
		ScheduledDate:      b.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime:      b.ScheduledTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Timezone:           b.Timezone,
		Status:             string(b.Status),
		Notes:              b.Notes,
		ConfirmedAt:        b.ConfirmedAt,
		CompletedAt:        b.CompletedAt,
		CancelledAt:        b.CancelledAt,
		CancellationReason: b.CancellationReason,
		Rating:             b.Rating,
		Feedback:           b.Feedback,
		RemindersSent:      b.RemindersSent,
		RescheduleCount:    b.RescheduleCount,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	if b.Outcome != nil {
		outcome := string(*b.Outcome)
		resp.Outcome = &outcome
	}
	return resp
}

// FromDomainBookingList converts a list of domain bookings.
func FromDomainBookingList(bookings []*domain.AppointmentBooking) *BookingListResponse {
	out := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: out}
}
