// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package lecture

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the day-month-year form used for input, display and storage.
	DateLayout = "02-01-2006"
	// isoDateLayout is accepted when reading files written by older versions.
	isoDateLayout = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
	// maxDaySpan is the number of days from 01-01-0001 to 31-12-9999.
	maxDaySpan = 3652058
)

var (
	// MinDate and MaxDate bound the dates that survive a save and load; the
	// text form has exactly four year digits.
	MinDate = NewDate(1, time.January, 1)
	MaxDate = NewDate(9999, time.December, 31)
)

// Date is a calendar date without time of day.
// The zero value is 01-01-0001.
type Date struct {
	t time.Time // always midnight UTC
}

// NewDate returns the date for the given year, month and day.
// Out-of-range values are normalized the same way time.Date does.
func NewDate(year int, month time.Month, dayOfMonth int) Date {
	return Date{t: time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a DD-MM-YYYY date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

// parseStoredDate accepts DD-MM-YYYY and the legacy YYYY-MM-DD form.
func parseStoredDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if d, err := ParseDate(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("date %q is neither DD-MM-YYYY nor YYYY-MM-DD", s)
	}
	return Date{t: t}, nil
}

// AddDays returns the date n days later (earlier when n is negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// ShiftDays is AddDays restricted to [MinDate, MaxDate]. Results outside the
// range return ErrDateOutOfRange.
func (d Date) ShiftDays(n int) (Date, error) {
	if n > maxDaySpan || n < -maxDaySpan {
		return Date{}, fmt.Errorf("%w: %s %+d days", ErrDateOutOfRange, d, n)
	}
	shifted := d.AddDays(n)
	if !shifted.InRange() {
		return Date{}, fmt.Errorf("%w: %s %+d days", ErrDateOutOfRange, d, n)
	}
	return shifted, nil
}

// InRange reports whether d lies within [MinDate, MaxDate].
func (d Date) InRange() bool {
	return !d.Before(MinDate) && !MaxDate.Before(d)
}

// DaysUntil returns the number of whole days from d to other.
// It is negative when other lies before d.
func (d Date) DaysUntil(other Date) int {
	// Unix seconds instead of Sub, which saturates after about 292 years.
	return int((other.t.Unix() - d.t.Unix()) / secondsPerDay)
}

// Before reports whether d lies strictly before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Compare returns -1, 0 or +1 like time.Time.Compare.
func (d Date) Compare(other Date) int { return d.t.Compare(other.t) }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := parseStoredDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
