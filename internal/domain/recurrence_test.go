package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRecurringPattern_Validate(t *testing.T) {
	tests := []struct {
		name    string
		pattern RecurringPattern
		wantErr error
	}{
		{
			name:    "valid daily",
			pattern: RecurringPattern{Type: RecurrenceDaily, Interval: 1},
		},
		{
			name:    "unknown type",
			pattern: RecurringPattern{Type: "yearly", Interval: 1},
			wantErr: ErrInvalidRecurrenceType,
		},
		{
			name:    "zero interval",
			pattern: RecurringPattern{Type: RecurrenceDaily, Interval: 0},
			wantErr: ErrInvalidInterval,
		},
		{
			name: "weekday filter on daily",
			pattern: RecurringPattern{
				Type: RecurrenceDaily, Interval: 1,
				DaysOfWeek: []time.Weekday{time.Monday},
			},
			wantErr: ErrWeekdayFilterMisuse,
		},
		{
			name: "weekday filter on monthly",
			pattern: RecurringPattern{
				Type: RecurrenceMonthly, Interval: 1,
				DaysOfWeek: []time.Weekday{time.Monday},
			},
			wantErr: ErrWeekdayFilterMisuse,
		},
		{
			name: "invalid weekday",
			pattern: RecurringPattern{
				Type: RecurrenceWeekly, Interval: 1,
				DaysOfWeek: []time.Weekday{time.Weekday(7)},
			},
			wantErr: ErrInvalidWeekday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pattern.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRecurringPattern_Validate_NormalizesWeekdays(t *testing.T) {
	p := RecurringPattern{
		Type: RecurrenceWeekly, Interval: 1,
		DaysOfWeek: []time.Weekday{time.Friday, time.Monday, time.Friday},
	}
	require.NoError(t, p.Validate())
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, p.DaysOfWeek)
}

func TestRecurringPattern_Occurrences_Daily(t *testing.T) {
	three := 3
	p := RecurringPattern{Type: RecurrenceDaily, Interval: 1, MaxOccurrences: &three}
	require.NoError(t, p.Validate())

	got := p.Occurrences(date(2026, 9, 14))
	assert.Equal(t, []time.Time{
		date(2026, 9, 14),
		date(2026, 9, 15),
		date(2026, 9, 16),
	}, got)
}

func TestRecurringPattern_Occurrences_DailyInterval(t *testing.T) {
	three := 3
	p := RecurringPattern{Type: RecurrenceDaily, Interval: 2, MaxOccurrences: &three}
	require.NoError(t, p.Validate())

	got := p.Occurrences(date(2026, 9, 14))
	assert.Equal(t, []time.Time{
		date(2026, 9, 14),
		date(2026, 9, 16),
		date(2026, 9, 18),
	}, got)
}

func TestRecurringPattern_Occurrences_EndDateInclusive(t *testing.T) {
	end := date(2026, 9, 16)
	p := RecurringPattern{Type: RecurrenceDaily, Interval: 1, EndDate: &end}
	require.NoError(t, p.Validate())

	got := p.Occurrences(date(2026, 9, 14))
	require.Len(t, got, 3)
	assert.Equal(t, end, got[2])
}

func TestRecurringPattern_Occurrences_DefaultCap(t *testing.T) {
	p := RecurringPattern{Type: RecurrenceDaily, Interval: 1}
	require.NoError(t, p.Validate())

	got := p.Occurrences(date(2026, 9, 14))
	assert.Len(t, got, DefaultMaxOccurrences)
}

func TestRecurringPattern_Occurrences_WeeklyFiltered(t *testing.T) {
	// 2026-09-14 is a Monday.
	four := 4
	p := RecurringPattern{
		Type: RecurrenceWeekly, Interval: 1,
		DaysOfWeek:     []time.Weekday{time.Monday, time.Wednesday},
		MaxOccurrences: &four,
	}
	require.NoError(t, p.Validate())

	got := p.Occurrences(date(2026, 9, 14))
	assert.Equal(t, []time.Time{
		date(2026, 9, 14), // Mon
		date(2026, 9, 16), // Wed
		date(2026, 9, 21), // Mon
		date(2026, 9, 23), // Wed
	}, got)

	for _, d := range got {
		assert.Contains(t, []time.Weekday{time.Monday, time.Wednesday}, d.Weekday())
	}
}

func TestRecurringPattern_Occurrences_WeeklyFilterStartsMidWeek(t *testing.T) {
	// Starting on a Thursday with a Monday filter: the first matching date
	// is the following Monday, and the skipped days consume no occurrences.
	two := 2
	p := RecurringPattern{
		Type: RecurrenceWeekly, Interval: 1,
		DaysOfWeek:     []time.Weekday{time.Monday},
		MaxOccurrences: &two,
	}
	require.NoError(t, p.Validate())

	got := p.Occurrences(date(2026, 9, 17)) // Thursday
	assert.Equal(t, []time.Time{
		date(2026, 9, 21),
		date(2026, 9, 28),
	}, got)
}

func TestRecurringPattern_Occurrences_Monthly(t *testing.T) {
	three := 3
	p := RecurringPattern{Type: RecurrenceMonthly, Interval: 1, MaxOccurrences: &three}
	require.NoError(t, p.Validate())

	got := p.Occurrences(date(2026, 9, 15))
	assert.Equal(t, []time.Time{
		date(2026, 9, 15),
		date(2026, 10, 15),
		date(2026, 11, 15),
	}, got)
}

func TestRecurringPattern_Occurrences_TruncatesStartTime(t *testing.T) {
	one := 1
	p := RecurringPattern{Type: RecurrenceDaily, Interval: 1, MaxOccurrences: &one}
	require.NoError(t, p.Validate())

	got := p.Occurrences(time.Date(2026, 9, 14, 16, 30, 0, 0, time.UTC))
	require.Len(t, got, 1)
	assert.Equal(t, date(2026, 9, 14), got[0])
}
