package domain

import (
	"time"

	"github.com/memberhq/SMP-AppointmentService/pkg/types"
)

// RangesOverlap reports whether the half-open time-of-day ranges [s1, e1)
// and [s2, e2) intersect. Ranges that only touch at a boundary do not
// overlap. This single predicate backs both slot-vs-slot and
// booking-vs-booking conflict detection.
func RangesOverlap(s1, e1, s2, e2 types.TimeString) bool {
	return s1.IsBefore(e2) && s2.IsBefore(e1)
}

// PadRange widens the half-open range [start, end) by buffer minutes on both
// sides, clamped at the day boundaries. Conflict checks pad candidate
// windows with the interviewer's buffer before comparing.
func PadRange(start, end types.TimeString, buffer int) (types.TimeString, types.TimeString) {
	if buffer <= 0 {
		return start, end
	}
	if s, err := start.AddMinutes(-buffer); err == nil {
		start = s
	}
	if e, err := end.AddMinutes(buffer); err == nil {
		end = e
	}
	return start, end
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates a timestamp to its calendar date at midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
