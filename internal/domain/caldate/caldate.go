// Package caldate provides a timezone-naive calendar date.
//
// Persisted dates are plain "YYYY-MM-DD" strings and every comparison or
// month computation works on (year, month, day) components. Converting to
// time.Time for arithmetic is avoided on purpose: mixing wall-clock time
// into date math causes off-by-one-day bugs at month boundaries.
package caldate

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date with no time or zone component.
// The zero value is treated as "no date".
type Date struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

// Parse parses a date in strict YYYY-MM-DD form.
func Parse(s string) (Date, error) {
	var d Date
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	if _, err := fmt.Sscanf(s, "%04d-%02d-%02d", &d.Year, &d.Month, &d.Day); err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	if d.Month < 1 || d.Month > 12 {
		return Date{}, fmt.Errorf("invalid month in date %q", s)
	}
	if d.Day < 1 || d.Day > DaysInMonth(d.Year, d.Month) {
		return Date{}, fmt.Errorf("invalid day in date %q", s)
	}
	return d, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime extracts the calendar date from a time.Time in its own location.
func FromTime(t time.Time) Date {
	y, m, day := t.Date()
	return Date{Year: y, Month: int(m), Day: day}
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether d is the zero value ("no date").
func (d Date) IsZero() bool {
	return d == Date{}
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a YYYY-MM-DD string. An empty string yields the zero value.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MonthIndex returns the absolute month number (year*12 + month-1).
// The difference between two month indexes is the calendar-month offset
// between the dates, ignoring days.
func (d Date) MonthIndex() int {
	return d.Year*12 + d.Month - 1
}

// OfMonthIndex builds a date in the month identified by the given absolute
// month index, with the day clamped to the last valid day of that month.
func OfMonthIndex(index, day int) Date {
	year := index / 12
	month := index%12 + 1
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return Date{Year: year, Month: month, Day: day}
}

// AddMonths advances d by n calendar months, preserving the day of month
// clamped to the target month's last valid day (Jan 31 + 1 -> Feb 28/29).
func (d Date) AddMonths(n int) Date {
	return OfMonthIndex(d.MonthIndex()+n, d.Day)
}

// AddDays advances d by n days (n >= 0), rolling over month and year ends.
func (d Date) AddDays(n int) Date {
	out := d
	for n > 0 {
		last := DaysInMonth(out.Year, out.Month)
		if out.Day+n <= last {
			out.Day += n
			return out
		}
		n -= last - out.Day + 1
		out = OfMonthIndex(out.MonthIndex()+1, 1)
	}
	return out
}

// Compare returns -1 if d is before other, 0 if equal, +1 if after.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	default:
		return sign(d.Day - other.Day)
	}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// EndOfMonth returns the last day of d's month.
func (d Date) EndOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: DaysInMonth(d.Year, d.Month)}
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
