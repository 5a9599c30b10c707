package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/memberhq/SMP-AppointmentService/pkg/types"
)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"identical ranges", "09:00", "10:00", "09:00", "10:00", true},
		{"partial overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"contained range", "09:00", "12:00", "10:00", "11:00", true},
		{"touching boundaries", "09:00", "10:00", "10:00", "11:00", false},
		{"touching boundaries reversed", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
		{"one minute overlap", "09:00", "10:01", "10:00", "11:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesOverlap(
				ts(tt.s1), ts(tt.e1),
				ts(tt.s2), ts(tt.e2),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	b := time.Date(2026, 9, 15, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, 9, 15, 17, 45, 12, 99, time.UTC)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), DateOnly(in))
}
