package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/memberhq/SMP-AppointmentService/pkg/types"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusBooked    BookingStatus = "booked"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// IsValid reports whether s is a known booking status.
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusBooked, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// BookingOutcome is the result recorded when a booking completes.
type BookingOutcome string

const (
	OutcomeApproved  BookingOutcome = "approved"
	OutcomeRejected  BookingOutcome = "rejected"
	OutcomeUndecided BookingOutcome = "undecided"
)

// IsValid reports whether o is a known outcome.
func (o BookingOutcome) IsValid() bool {
	return o == OutcomeApproved || o == OutcomeRejected || o == OutcomeUndecided
}

// AppointmentBooking is a requester's claim on one seat of a slot. The
// scheduled date/time/duration/timezone are denormalized from the slot so
// the booking stays meaningful if the slot is later deleted. Bookings are
// never physically deleted; cancellation is a status.
type AppointmentBooking struct {
	ID            int64
	ReferenceCode uuid.UUID
	SlotID        int64

	// Requester: exactly one of UserID and GuestEmail is set. Guests are
	// identified by contact email.
	UserID     *int64
	GuestName  *string
	GuestEmail *string
	GuestPhone *string

	AppointmentType AppointmentType
	ScheduledDate   time.Time
	ScheduledTime   types.TimeString
	DurationMinutes int
	Timezone        string

	Status BookingStatus
	Notes  *string

	ConfirmedAt        *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason *string

	Outcome  *BookingOutcome
	Rating   *int // 1..5, set on completion
	Feedback *string

	RemindersSent   int
	RescheduleCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGuest reports whether the booking belongs to an unauthenticated requester.
func (b *AppointmentBooking) IsGuest() bool {
	return b.UserID == nil
}

// IsActive reports whether the booking still holds a seat on its slot.
func (b *AppointmentBooking) IsActive() bool {
	return b.Status == StatusBooked || b.Status == StatusConfirmed
}

// CanBeCancelled reports whether cancellation is reachable from the current
// status. Only booked and confirmed bookings can be cancelled.
func (b *AppointmentBooking) CanBeCancelled() bool {
	return b.Status == StatusBooked || b.Status == StatusConfirmed
}

// EndTime returns the exclusive end of the booked window.
func (b *AppointmentBooking) EndTime() (types.TimeString, error) {
	return b.ScheduledTime.AddMinutes(b.DurationMinutes)
}

// ScheduledAt combines the denormalized date and time into a timestamp in
// the booking's timezone, falling back to UTC on an unknown label.
func (b *AppointmentBooking) ScheduledAt() time.Time {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return b.ScheduledTime.OnDate(b.ScheduledDate, loc)
}

// ConflictsWith reports whether two bookings of the same requester collide
// in time. Only active bookings can conflict.
func (b *AppointmentBooking) ConflictsWith(other *AppointmentBooking) bool {
	if !b.IsActive() || !other.IsActive() {
		return false
	}
	if !SameDay(b.ScheduledDate, other.ScheduledDate) {
		return false
	}
	bEnd, err := b.EndTime()
	if err != nil {
		return false
	}
	oEnd, err := other.EndTime()
	if err != nil {
		return false
	}
	return RangesOverlap(b.ScheduledTime, bEnd, other.ScheduledTime, oEnd)
}

// CanTransitionTo encodes the lifecycle state machine:
//
//	booked    -> confirmed | cancelled | completed | no_show
//	confirmed -> completed | cancelled | no_show
//	completed, cancelled, no_show are terminal.
//
// Completing directly from booked is allowed for auto-approved flows where
// no explicit confirmation step happens.
func (b *AppointmentBooking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusBooked:
		return next == StatusConfirmed || next == StatusCancelled ||
			next == StatusCompleted || next == StatusNoShow
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled || next == StatusNoShow
	default:
		return false
	}
}

// RequesterFilter identifies a booking owner for conflict detection and
// listing: by authenticated user id or by guest email, never both.
type RequesterFilter struct {
	UserID     *int64
	GuestEmail *string
}

// RequesterOf builds the filter matching a booking's owner.
func RequesterOf(b *AppointmentBooking) RequesterFilter {
	return RequesterFilter{UserID: b.UserID, GuestEmail: b.GuestEmail}
}

// ReminderFilter selects active bookings due a reminder within a lead window.
type ReminderFilter struct {
	FromDate     time.Time
	ToDate       time.Time
	MaxReminders int // bookings with reminders_sent below this are returned
}
