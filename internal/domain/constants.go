package domain

// Default configuration values
const (
	DefaultCapacity                  = 1
	DefaultCancellationDeadlineHours = 24
	DefaultBufferMinutes             = 0
	DefaultAdvanceBookingDays        = 30
	DefaultMaxDailyAppointments      = 8
	DefaultMaxOccurrences            = 52 // recurrence safety cap
	DefaultMaxRemindersPerBooking    = 3
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MinCapacity                 = 1
	MaxCapacity                 = 100
	MinRating                   = 1
	MaxRating                   = 5
	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveBookingStatuses are the statuses that hold a seat on a slot.
// Conflict detection and the reminder query only consider these.
var ActiveBookingStatuses = []BookingStatus{
	StatusBooked,
	StatusConfirmed,
}

// TerminalBookingStatuses are the statuses a booking can never leave.
var TerminalBookingStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
