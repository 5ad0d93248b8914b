// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package report derives progress and workload figures from lecture lists.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ManuGH/lectrack/internal/lecture"
)

// DefaultBarWidth is the number of cells in the progress bar.
const DefaultBarWidth = 20

const (
	barFill  = "█"
	barEmpty = " "
)

// ErrNotComputable is returned for ratios over a zero total.
var ErrNotComputable = errors.New("not computable: total duration is zero")

// Progress is the summed duration and watched time of the active lectures.
type Progress struct {
	Duration int
	Watched  int
}

// Aggregate sums Duration and AmountWatched over active lectures only.
func Aggregate(items []lecture.Lecture) Progress {
	var p Progress
	for _, l := range items {
		if !l.Active() {
			continue
		}
		p.Duration += l.Duration
		p.Watched += l.AmountWatched
	}
	return p
}

// Percent returns floor(watched*100/total).
func Percent(watched, total int) (int, error) {
	if total == 0 {
		return 0, ErrNotComputable
	}
	return floorDiv(watched*100, total), nil
}

// ProgressBar renders "[████      ] 33%" with width cells.
// Filled cells are floor(watched/total*width), clamped to the bar for drawing;
// the percentage is not clamped.
func ProgressBar(watched, total, width int) (string, error) {
	if total == 0 {
		return "", ErrNotComputable
	}
	if width <= 0 {
		width = DefaultBarWidth
	}
	filled := floorDiv(watched*width, total)
	filled = max(0, min(filled, width))
	pct, _ := Percent(watched, total)

	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(strings.Repeat(barFill, filled))
	b.WriteString(strings.Repeat(barEmpty, width-filled))
	b.WriteByte(']')
	fmt.Fprintf(&b, " %d%%", pct)
	return b.String(), nil
}

// TimeLeft returns Duration - AmountWatched; negative when over-watched.
func TimeLeft(l lecture.Lecture) int {
	return l.TimeLeft()
}

// FormatClock renders minutes as HH:MM. Negative values keep a leading "-".
func FormatClock(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
