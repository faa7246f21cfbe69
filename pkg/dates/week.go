package dates

import (
	"strings"
	"time"
)

// WeekRange is a half-open date interval [Start, End). End is the first date
// after the range.
type WeekRange struct {
	Start Date
	End   Date
}

// WeekOf returns the 7-day week containing ref for the given week-start
// weekday: Start is the most recent occurrence of weekStart on or before ref,
// End is exactly seven days later (exclusive).
func WeekOf(ref Date, weekStart time.Weekday) WeekRange {
	back := (int(ref.Weekday()) - int(weekStart) + 7) % 7
	start := ref.AddDays(-back)
	return WeekRange{Start: start, End: start.AddDays(7)}
}

// CurrentWeek returns the week containing today.
func CurrentWeek(weekStart time.Weekday) WeekRange {
	return WeekOf(Today(), weekStart)
}

// Contains reports whether d falls inside the range using half-open
// semantics: Start <= d < End. An absent date is never contained.
func (r WeekRange) Contains(d Date) bool {
	if d.IsZero() {
		return false
	}
	return d.Compare(r.Start) >= 0 && d.Compare(r.End) < 0
}

// Next returns the following week.
func (r WeekRange) Next() WeekRange {
	return WeekRange{Start: r.Start.AddDays(7), End: r.End.AddDays(7)}
}

// Prev returns the preceding week.
func (r WeekRange) Prev() WeekRange {
	return WeekRange{Start: r.Start.AddDays(-7), End: r.End.AddDays(-7)}
}

// String formats the range for logs.
func (r WeekRange) String() string {
	return r.Start.String() + ".." + r.End.String()
}

// ParseWeekday maps a week-start setting string to a weekday. "sunday" (any
// case) selects Sunday; anything else defaults to Monday.
func ParseWeekday(s string) time.Weekday {
	if strings.EqualFold(strings.TrimSpace(s), "sunday") {
		return time.Sunday
	}
	return time.Monday
}
