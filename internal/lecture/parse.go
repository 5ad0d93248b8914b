// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package lecture

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	maxDurationHours = 9999
	// maxDurationMinutes bounds the MM field and the total, 9999:59.
	maxDurationMinutes = maxDurationHours*60 + 59
)

var (
	durationPattern = regexp.MustCompile(`^(\d+):(\d+)$`)
	relativePattern = regexp.MustCompile(`^\+(\d+)$`)
)

// ParseDuration parses HH:MM into minutes. Minutes are not limited to 59,
// so "00:90" is 90. Hours above 9999 are rejected.
func ParseDuration(input string) (int, error) {
	s := strings.TrimSpace(input)
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, &ParseError{Field: "duration", Input: input, Expect: "HH:MM"}
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, &ParseError{Field: "duration", Input: input, Expect: "HH:MM", Err: err}
	}
	minutes, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, &ParseError{Field: "duration", Input: input, Expect: "HH:MM", Err: err}
	}
	if hours > maxDurationHours || minutes > maxDurationMinutes {
		return 0, &ParseError{Field: "duration", Input: input, Expect: "at most 9999:59"}
	}
	if total := hours*60 + minutes; total <= maxDurationMinutes {
		return total, nil
	}
	return 0, &ParseError{Field: "duration", Input: input, Expect: "at most 9999:59"}
}

// ParseDeadline parses an absolute DD-MM-YYYY date or a relative "+N"
// (N days after today).
func ParseDeadline(input string, today Date) (Date, error) {
	s := strings.TrimSpace(input)
	if m := relativePattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Date{}, &ParseError{Field: "deadline", Input: input, Expect: "DD-MM-YYYY or +N", Err: err}
		}
		d, err := today.ShiftDays(n)
		if err != nil {
			return Date{}, &ParseError{Field: "deadline", Input: input, Expect: "a date up to " + MaxDate.String(), Err: err}
		}
		return d, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return Date{}, &ParseError{Field: "deadline", Input: input, Expect: "DD-MM-YYYY or +N", Err: err}
	}
	if !d.InRange() {
		return Date{}, &ParseError{Field: "deadline", Input: input, Expect: "a date from " + MinDate.String(), Err: ErrDateOutOfRange}
	}
	return d, nil
}

// ParseInt parses a signed integer entered at a prompt.
func ParseInt(field, input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, &ParseError{Field: field, Input: input, Expect: "a whole number", Err: err}
	}
	return n, nil
}

// ParseIndex parses a 1-based lecture index. Range checks happen in the repository.
func ParseIndex(input string) (int, error) {
	return ParseInt("index", input)
}

// Confirmed reports whether answer is an affirmative reply ("y" or "yes").
func Confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
