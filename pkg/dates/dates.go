// Package dates provides the calendar primitives the planner stores and sorts by:
// dates (YYYY-MM-DD), wall-clock times (HH:MM), combined stamps, and week ranges.
//
// All parsing is lenient: malformed or empty input yields the zero value,
// which means "absent". Comparators treat absent values as greater than any
// present value, so unscheduled items sort last.
package dates

import (
	"regexp"
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
	stampLayout = "2006-01-02 15:04"
)

// Date is a calendar date without a time-of-day. The zero value means absent.
type Date struct {
	t time.Time
}

// NewDate returns the date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date in the system's local zone.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a YYYY-MM-DD string. Malformed or empty input yields the
// zero (absent) Date, never an error.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}
	}
	return Date{t: t}
}

// IsZero reports whether the date is absent.
func (d Date) IsZero() bool { return d.t.IsZero() }

// String formats the date as YYYY-MM-DD, or "" when absent.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// AddDays returns the date n days after d. Adding to an absent date yields an
// absent date.
func (d Date) AddDays(n int) Date {
	if d.IsZero() {
		return Date{}
	}
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// Equal reports whether two dates are the same calendar day. Two absent dates
// are equal.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Compare orders two dates with empty-sorts-last semantics: an absent date is
// greater than any present date, and two absent dates compare equal.
func (d Date) Compare(other Date) int {
	switch {
	case d.IsZero() && other.IsZero():
		return 0
	case d.IsZero():
		return 1
	case other.IsZero():
		return -1
	}
	return d.t.Compare(other.t)
}

// Clock is a wall-clock time-of-day with minute precision. The zero value
// means absent.
type Clock struct {
	hour, minute int
	valid        bool
}

// NewClock returns the clock time for the given hour and minute.
func NewClock(hour, minute int) Clock {
	return Clock{hour: hour, minute: minute, valid: true}
}

// ParseClock parses an HH:MM string. Malformed or empty input yields the zero
// (absent) Clock, never an error.
func ParseClock(s string) Clock {
	s = strings.TrimSpace(s)
	if s == "" {
		return Clock{}
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return Clock{}
	}
	return NewClock(t.Hour(), t.Minute())
}

// IsZero reports whether the clock time is absent.
func (c Clock) IsZero() bool { return !c.valid }

// String formats the time as HH:MM, or "" when absent.
func (c Clock) String() string {
	if c.IsZero() {
		return ""
	}
	return time.Date(0, 1, 1, c.hour, c.minute, 0, 0, time.UTC).Format(clockLayout)
}

// Compare orders two clock times with empty-sorts-last semantics.
func (c Clock) Compare(other Clock) int {
	switch {
	case c.IsZero() && other.IsZero():
		return 0
	case c.IsZero():
		return 1
	case other.IsZero():
		return -1
	}
	a := c.hour*60 + c.minute
	b := other.hour*60 + other.minute
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Stamp is a combined calendar date and clock time. It is absent unless both
// components are present.
type Stamp struct {
	Date  Date
	Clock Clock
}

// NewStamp combines a date and a clock time.
func NewStamp(d Date, c Clock) Stamp {
	return Stamp{Date: d, Clock: c}
}

// ParseStamp parses a "YYYY-MM-DD HH:MM" string. Malformed or empty input
// yields the zero (absent) Stamp, never an error.
func ParseStamp(s string) Stamp {
	s = strings.TrimSpace(s)
	if s == "" {
		return Stamp{}
	}
	t, err := time.Parse(stampLayout, s)
	if err != nil {
		return Stamp{}
	}
	return Stamp{
		Date:  NewDate(t.Year(), t.Month(), t.Day()),
		Clock: NewClock(t.Hour(), t.Minute()),
	}
}

// IsZero reports whether the stamp is absent. A stamp missing either component
// counts as absent.
func (s Stamp) IsZero() bool { return s.Date.IsZero() || s.Clock.IsZero() }

// String formats the stamp as "YYYY-MM-DD HH:MM", or "" when absent.
func (s Stamp) String() string {
	if s.IsZero() {
		return ""
	}
	return s.Date.String() + " " + s.Clock.String()
}

// Compare orders two stamps with empty-sorts-last semantics.
func (s Stamp) Compare(other Stamp) int {
	switch {
	case s.IsZero() && other.IsZero():
		return 0
	case s.IsZero():
		return 1
	case other.IsZero():
		return -1
	}
	if c := s.Date.Compare(other.Date); c != 0 {
		return c
	}
	return s.Clock.Compare(other.Clock)
}

// offsetSuffix matches a trailing numeric zone offset such as +07:00 or -0800.
var offsetSuffix = regexp.MustCompile(`[+-]\d{2}:?\d{2}$`)

// naive timestamp layouts tried in order for zone-less input.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Extract parses a remote timestamp into a local date and clock time. The
// input is either an absolute instant (trailing "Z" or a zone offset), which
// is converted into loc, or a zone-naive timestamp taken at face value.
// Seconds are truncated to whole minutes. Malformed or empty input yields
// absent values.
func Extract(iso string, loc *time.Location) (Date, Clock) {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return Date{}, Clock{}
	}
	if loc == nil {
		loc = time.Local
	}

	if strings.HasSuffix(iso, "Z") || offsetSuffix.MatchString(iso) {
		t, err := time.Parse(time.RFC3339, iso)
		if err != nil {
			t, err = time.Parse("2006-01-02T15:04:05-0700", iso)
		}
		if err != nil {
			return Date{}, Clock{}
		}
		local := t.In(loc)
		return NewDate(local.Year(), local.Month(), local.Day()), NewClock(local.Hour(), local.Minute())
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, iso, loc); err == nil {
			return NewDate(t.Year(), t.Month(), t.Day()), NewClock(t.Hour(), t.Minute())
		}
	}
	return Date{}, Clock{}
}
