package domain

import (
	"errors"
	"sort"
	"time"
)

// RecurrenceType is the unit a recurring pattern advances by.
type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

var (
	ErrInvalidRecurrenceType = errors.New("invalid recurrence type")
	ErrInvalidInterval       = errors.New("recurrence interval must be at least 1")
	ErrInvalidWeekday        = errors.New("invalid weekday in recurrence filter")
	ErrWeekdayFilterMisuse   = errors.New("weekday filter is only valid for weekly recurrence")
)

// RecurringPattern is a value object describing how one slot template
// expands into many dated slots. It is consumed once by the slot generator
// and never persisted on its own.
type RecurringPattern struct {
	Type           RecurrenceType
	Interval       int            // every N units, min 1
	DaysOfWeek     []time.Weekday // weekly only; 0=Sunday .. 6=Saturday
	EndDate        *time.Time
	MaxOccurrences *int // nil means DefaultMaxOccurrences
}

// Validate normalizes and checks the pattern. The weekday filter is
// deduplicated and sorted in place.
func (p *RecurringPattern) Validate() error {
	switch p.Type {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
	default:
		return ErrInvalidRecurrenceType
	}

	if p.Interval < 1 {
		return ErrInvalidInterval
	}

	if len(p.DaysOfWeek) > 0 && p.Type != RecurrenceWeekly {
		return ErrWeekdayFilterMisuse
	}

	seen := make(map[time.Weekday]struct{}, len(p.DaysOfWeek))
	normalized := make([]time.Weekday, 0, len(p.DaysOfWeek))
	for _, wd := range p.DaysOfWeek {
		if wd < time.Sunday || wd > time.Saturday {
			return ErrInvalidWeekday
		}
		if _, ok := seen[wd]; ok {
			continue
		}
		seen[wd] = struct{}{}
		normalized = append(normalized, wd)
	}
	sort.Slice(normalized, func(i, j int) bool { return normalized[i] < normalized[j] })
	p.DaysOfWeek = normalized

	if p.MaxOccurrences != nil && *p.MaxOccurrences < 1 {
		return errors.New("max occurrences must be at least 1")
	}

	return nil
}

// occurrenceCap returns the effective occurrence bound.
func (p *RecurringPattern) occurrenceCap() int {
	if p.MaxOccurrences != nil {
		return *p.MaxOccurrences
	}
	return DefaultMaxOccurrences
}

// Occurrences expands the pattern into concrete dates starting at start
// (inclusive). The occurrence cap bounds the number of retained dates, so
// the walk always terminates even when the availability template later
// rejects every date. For weekly patterns with a weekday filter, skipped
// weekdays do not consume an occurrence.
func (p *RecurringPattern) Occurrences(start time.Time) []time.Time {
	start = DateOnly(start)
	limit := p.occurrenceCap()
	out := make([]time.Time, 0, limit)

	if p.Type == RecurrenceWeekly && len(p.DaysOfWeek) > 0 {
		return p.weeklyFiltered(start, limit, out)
	}

	step := func(d time.Time) time.Time {
		switch p.Type {
		case RecurrenceDaily:
			return d.AddDate(0, 0, p.Interval)
		case RecurrenceWeekly:
			return d.AddDate(0, 0, 7*p.Interval)
		default: // monthly
			return d.AddDate(0, p.Interval, 0)
		}
	}

	for d := start; len(out) < limit; d = step(d) {
		if p.EndDate != nil && d.After(*p.EndDate) {
			break
		}
		out = append(out, d)
	}
	return out
}

// weeklyFiltered walks day by day so non-matching weekdays are skipped
// without consuming the cap, and jumps interval-1 extra weeks at each week
// boundary. Every matching weekday consumes an occurrence, so the walk
// covers at most limit*7*interval calendar days.
func (p *RecurringPattern) weeklyFiltered(start time.Time, limit int, out []time.Time) []time.Time {
	match := make(map[time.Weekday]struct{}, len(p.DaysOfWeek))
	for _, wd := range p.DaysOfWeek {
		match[wd] = struct{}{}
	}

	d := start
	for len(out) < limit {
		if p.EndDate != nil && d.After(*p.EndDate) {
			break
		}
		if _, ok := match[d.Weekday()]; ok {
			out = append(out, d)
		}

		next := d.AddDate(0, 0, 1)
		if p.Interval > 1 && next.Weekday() == time.Monday {
			next = next.AddDate(0, 0, (p.Interval-1)*7)
		}
		d = next
	}
	return out
}
