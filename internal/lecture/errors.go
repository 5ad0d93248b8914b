// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package lecture

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange classifies lookups by a position that does not exist.
	ErrIndexOutOfRange = errors.New("lecture index out of range")
	// ErrNotFound is returned when no active lecture carries the requested index.
	ErrNotFound = errors.New("lecture not found")
	// ErrInvalidInput classifies user input that could not be parsed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyName is returned when adding a lecture without a name.
	ErrEmptyName = errors.New("lecture name is empty")
	// ErrNegativeDuration is returned when adding a lecture with a negative length.
	ErrNegativeDuration = errors.New("lecture duration is negative")
	// ErrNegativeProgress is returned when a progress change would drop below zero.
	ErrNegativeProgress = errors.New("watched time would become negative")
	// ErrDateOutOfRange is returned when a deadline would leave 01-01-0001..31-12-9999.
	ErrDateOutOfRange = errors.New("date out of range")
	// ErrSaveFailed wraps store failures after a mutation; the in-memory change is kept.
	ErrSaveFailed = errors.New("save lectures")
)

// IndexError reports a 1-based index outside [1, Len].
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("invalid lecture index %d: no lectures", e.Index)
	}
	return fmt.Sprintf("invalid lecture index %d: expected 1..%d", e.Index, e.Len)
}

// Is makes errors.Is(err, ErrIndexOutOfRange) match.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// ParseError reports user input that does not follow the expected grammar.
type ParseError struct {
	Field  string // "duration", "deadline", "index", ...
	Input  string
	Expect string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("invalid %s %q: expected %s", e.Field, e.Input, e.Expect)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInvalidInput) match.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}
