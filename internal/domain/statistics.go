package domain

// SlotStatistics is the slot-side rollup over a date range.
type SlotStatistics struct {
	TotalSlots       int
	AvailableSlots   int // is_available AND booked_count < capacity
	FullyBookedSlots int
	TotalCapacity    int
	TotalBooked      int
	Utilization      float64 // TotalBooked / TotalCapacity, 0 when empty
}

// BookingStatistics is the booking-side rollup over a date range.
type BookingStatistics struct {
	TotalBookings int
	Completed     int
	Cancelled     int
	NoShows       int
	Rescheduled   int // bookings with reschedule_count > 0

	CompletionRate float64
	NoShowRate     float64
	RescheduleRate float64
	AverageRating  float64 // over bookings with rating > 0
}

// Rate divides safely: zero denominator yields zero, never NaN.
func Rate(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
