package models

import (
	"time"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
)

// StatisticsRequest selects the aggregation window.
type StatisticsRequest struct {
	FromDate        time.Time
	ToDate          time.Time
	AppointmentType *string
}

// SlotStatisticsResponse is the slot-side rollup.
type SlotStatisticsResponse struct {
	TotalSlots       int     `json:"totalSlots"`
	AvailableSlots   int     `json:"availableSlots"`
	FullyBookedSlots int     `json:"fullyBookedSlots"`
	TotalCapacity    int     `json:"totalCapacity"`
	TotalBooked      int     `json:"totalBooked"`
	Utilization      float64 `json:"utilization"`
}

// BookingStatisticsResponse is the booking-side rollup. Rates are 0 when
// there are no bookings in the window.
type BookingStatisticsResponse struct {
	TotalBookings  int     `json:"totalBookings"`
	Completed      int     `json:"completed"`
	Cancelled      int     `json:"cancelled"`
	NoShows        int     `json:"noShows"`
	Rescheduled    int     `json:"rescheduled"`
	CompletionRate float64 `json:"completionRate"`
	NoShowRate     float64 `json:"noShowRate"`
	RescheduleRate float64 `json:"rescheduleRate"`
	AverageRating  float64 `json:"averageRating"`
}

// StatisticsResponse combines both rollups for one window.
type StatisticsResponse struct {
	FromDate string                     `json:"fromDate"`
	ToDate   string                     `json:"toDate"`
	Slots    *SlotStatisticsResponse    `json:"slots"`
	Bookings *BookingStatisticsResponse `json:"bookings"`
}

// FromDomainStatistics converts the domain rollups to wire form.
func FromDomainStatistics(from, to time.Time, slots *domain.SlotStatistics, bookings *domain.BookingStatistics) *StatisticsResponse {
	return &StatisticsResponse{
		FromDate: from.Format(domain.DateFormat),
		ToDate:   to.Format(domain.DateFormat),
		Slots: &SlotStatisticsResponse{
			TotalSlots:       slots.TotalSlots,
			AvailableSlots:   slots.AvailableSlots,
			FullyBookedSlots: slots.FullyBookedSlots,
			TotalCapacity:    slots.TotalCapacity,
			TotalBooked:      slots.TotalBooked,
			Utilization:      slots.Utilization,
		},
		Bookings: &BookingStatisticsResponse{
			TotalBookings:  bookings.TotalBookings,
			Completed:      bookings.Completed,
			Cancelled:      bookings.Cancelled,
			NoShows:        bookings.NoShows,
			Rescheduled:    bookings.Rescheduled,
			CompletionRate: bookings.CompletionRate,
			NoShowRate:     bookings.NoShowRate,
			RescheduleRate: bookings.RescheduleRate,
			AverageRating:  bookings.AverageRating,
		},
	}
}
