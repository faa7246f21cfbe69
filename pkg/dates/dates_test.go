package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid", "2025-03-01", "2025-03-01"},
		{"padded", "  2025-03-01  ", "2025-03-01"},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
		{"garbage", "March 1st", ""},
		{"wrong order", "01-03-2025", ""},
		{"impossible day", "2025-02-30", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDate(tt.input).String())
		})
	}
}

func TestParseClock(t *testing.T) {
	assert.Equal(t, "23:59", ParseClock("23:59").String())
	assert.Equal(t, "09:05", ParseClock("09:05").String())
	assert.True(t, ParseClock("").IsZero())
	assert.True(t, ParseClock("24:00").IsZero())
	assert.True(t, ParseClock("noonish").IsZero())
}

func TestParseStamp(t *testing.T) {
	s := ParseStamp("2025-03-01 23:59")
	require.False(t, s.IsZero())
	assert.Equal(t, "2025-03-01 23:59", s.String())

	assert.True(t, ParseStamp("2025-03-01").IsZero())
	assert.True(t, ParseStamp("").IsZero())
}

func TestDateCompareEmptyLast(t *testing.T) {
	present := ParseDate("2025-03-01")
	later := ParseDate("2025-03-02")
	var absent Date

	assert.Equal(t, -1, present.Compare(later))
	assert.Equal(t, 1, later.Compare(present))
	assert.Equal(t, 0, present.Compare(present))

	// Absent sorts after any present value.
	assert.Equal(t, 1, absent.Compare(present))
	assert.Equal(t, -1, present.Compare(absent))
	assert.Equal(t, 0, absent.Compare(absent))
}

func TestClockCompareEmptyLast(t *testing.T) {
	early := ParseClock("08:00")
	late := ParseClock("23:59")
	var absent Clock

	assert.Equal(t, -1, early.Compare(late))
	assert.Equal(t, 1, absent.Compare(late))
	assert.Equal(t, -1, early.Compare(absent))
	assert.Equal(t, 0, absent.Compare(absent))
}

func TestStampCompare(t *testing.T) {
	a := ParseStamp("2025-03-01 08:00")
	b := ParseStamp("2025-03-01 09:00")
	c := ParseStamp("2025-03-02 00:00")
	var absent Stamp

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, -1, b.Compare(c))
	assert.Equal(t, 1, absent.Compare(c))
	assert.Equal(t, 0, absent.Compare(absent))
}

func TestExtractAbsoluteInstant(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	// 07:30 UTC is 23:30 the previous day in Los Angeles (PST, UTC-8).
	d, c := Extract("2025-01-15T07:30:45Z", loc)
	assert.Equal(t, "2025-01-14", d.String())
	assert.Equal(t, "23:30", c.String())

	// Offset form, with and without colon.
	d, c = Extract("2025-01-15T10:00:00+02:00", loc)
	assert.Equal(t, "2025-01-15", d.String())
	assert.Equal(t, "00:00", c.String())

	d, _ = Extract("2025-01-15T10:00:00-0500", loc)
	assert.Equal(t, "2025-01-15", d.String())
}

func TestExtractNaiveTimestamp(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	// Zone-naive input is taken at face value, no conversion.
	d, c := Extract("2025-03-01T23:59:59", loc)
	assert.Equal(t, "2025-03-01", d.String())
	assert.Equal(t, "23:59", c.String())

	d, c = Extract("2025-03-01T23:59", loc)
	assert.Equal(t, "2025-03-01", d.String())
	assert.Equal(t, "23:59", c.String())
}

func TestExtractTruncatesToMinutes(t *testing.T) {
	d, c := Extract("2025-06-10T12:34:56Z", time.UTC)
	assert.Equal(t, "2025-06-10", d.String())
	assert.Equal(t, "12:34", c.String())
}

func TestExtractMalformed(t *testing.T) {
	for _, input := range []string{"", "  ", "next tuesday", "2025-13-01T00:00:00Z"} {
		d, c := Extract(input, time.UTC)
		assert.True(t, d.IsZero(), "input %q", input)
		assert.True(t, c.IsZero(), "input %q", input)
	}
}
