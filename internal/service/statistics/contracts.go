package statistics

import (
	"context"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
)

// SlotRepository aggregates slot-side counters.
type SlotRepository interface {
	Stats(ctx context.Context, filter domain.StatsRangeFilter) (*domain.SlotStatistics, error)
}

// BookingRepository aggregates booking-side counters.
type BookingRepository interface {
	Stats(ctx context.Context, filter domain.StatsRangeFilter) (*domain.BookingStatistics, error)
}

// Logger describes the logging methods used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
