package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeBooking(start string, minutes int) *AppointmentBooking {
	return &AppointmentBooking{
		ScheduledDate:   date(2026, 9, 15),
		ScheduledTime:   ts(start),
		DurationMinutes: minutes,
		Timezone:        "UTC",
		Status:          StatusConfirmed,
	}
}

func TestBooking_CanTransitionTo(t *testing.T) {
	all := []BookingStatus{
		StatusBooked, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow,
	}

	allowed := map[BookingStatus]map[BookingStatus]bool{
		StatusBooked: {
			StatusConfirmed: true,
			StatusCompleted: true, // auto-approve flows skip confirmation
			StatusCancelled: true,
			StatusNoShow:    true,
		},
		StatusConfirmed: {
			StatusCompleted: true,
			StatusCancelled: true,
			StatusNoShow:    true,
		},
		StatusCompleted: {},
		StatusCancelled: {},
		StatusNoShow:    {},
	}

	for _, from := range all {
		for _, to := range all {
			b := &AppointmentBooking{Status: from}
			assert.Equal(t, allowed[from][to], b.CanTransitionTo(to),
				"%s -> %s", from, to)
		}
	}
}

func TestBooking_ConflictsWith(t *testing.T) {
	base := activeBooking("10:00", 60)

	t.Run("overlapping windows conflict", func(t *testing.T) {
		other := activeBooking("10:30", 60)
		assert.True(t, base.ConflictsWith(other))
		assert.True(t, other.ConflictsWith(base))
	})

	t.Run("back to back does not conflict", func(t *testing.T) {
		other := activeBooking("11:00", 60)
		assert.False(t, base.ConflictsWith(other))
	})

	t.Run("different days never conflict", func(t *testing.T) {
		other := activeBooking("10:00", 60)
		other.ScheduledDate = date(2026, 9, 16)
		assert.False(t, base.ConflictsWith(other))
	})

	t.Run("cancelled bookings never conflict", func(t *testing.T) {
		other := activeBooking("10:00", 60)
		other.Status = StatusCancelled
		assert.False(t, base.ConflictsWith(other))
		assert.False(t, other.ConflictsWith(base))
	})
}

func TestBooking_ScheduledAt(t *testing.T) {
	b := activeBooking("10:00", 60)
	b.Timezone = "Europe/Berlin"

	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 10, 0, 0, 0, loc), b.ScheduledAt())

	b.Timezone = "Not/AZone"
	assert.Equal(t, time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC), b.ScheduledAt())
}

func TestBooking_EndTime(t *testing.T) {
	b := activeBooking("10:00", 90)
	end, err := b.EndTime()
	require.NoError(t, err)
	assert.Equal(t, ts("11:30"), end)
}

func TestBooking_StateHelpers(t *testing.T) {
	b := &AppointmentBooking{Status: StatusBooked}
	assert.True(t, b.IsActive())
	assert.True(t, b.CanBeCancelled())

	b.Status = StatusCompleted
	assert.False(t, b.IsActive())
	assert.False(t, b.CanBeCancelled())

	userID := int64(7)
	b.UserID = &userID
	assert.False(t, b.IsGuest())
	b.UserID = nil
	assert.True(t, b.IsGuest())
}

func TestSlot_CapacityHelpers(t *testing.T) {
	s := &AppointmentSlot{Capacity: 3, BookedCount: 2, IsAvailable: true}
	assert.False(t, s.IsFull())
	assert.True(t, s.IsBookable())
	assert.Equal(t, 1, s.RemainingCapacity())

	s.BookedCount = 3
	assert.True(t, s.IsFull())
	assert.False(t, s.IsBookable())
	assert.Equal(t, 0, s.RemainingCapacity())

	s.BookedCount = 1
	s.IsAvailable = false
	assert.False(t, s.IsBookable())
}

func TestSlot_OverlapsWith(t *testing.T) {
	a := &AppointmentSlot{
		InterviewerID: 1,
		SlotDate:      date(2026, 9, 15),
		StartTime:     ts("10:00"),
		EndTime:       ts("11:00"),
	}
	b := &AppointmentSlot{
		InterviewerID: 1,
		SlotDate:      date(2026, 9, 15),
		StartTime:     ts("10:30"),
		EndTime:       ts("11:30"),
	}

	assert.True(t, a.OverlapsWith(b))

	b.InterviewerID = 2
	assert.False(t, a.OverlapsWith(b))

	b.InterviewerID = 1
	b.StartTime, b.EndTime = ts("11:00"), ts("12:00")
	assert.False(t, a.OverlapsWith(b))
}
