// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ManuGH/lectrack/internal/lecture"
)

const ruleWidth = 75

// cellName keeps tabs in lecture names from splitting tabwriter columns.
func cellName(name string) string {
	return strings.ReplaceAll(name, "\t", " ")
}

// WriteLectures prints the active lectures with their remaining time followed
// by the aggregate progress bar.
func WriteLectures(w io.Writer, items []lecture.Lecture, barWidth int) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Index\tName\tTime left\tDeadline")
	for _, l := range items {
		if !l.Active() {
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", l.Index, cellName(l.Name), FormatClock(TimeLeft(l)), l.Deadline)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	p := Aggregate(items)
	bar, err := ProgressBar(p.Watched, p.Duration, barWidth)
	if errors.Is(err, ErrNotComputable) {
		_, err = fmt.Fprintln(w, "\nProgress: n/a (no active lectures with a duration)")
		return err
	}
	_, err = fmt.Fprintf(w, "\nProgress: %s\n", bar)
	return err
}

// WriteWorkload prints the daily workload table and the daily estimate.
func WriteWorkload(w io.Writer, wl Workload) error {
	rule := strings.Repeat("-", ruleWidth)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Video\tTime left\tDays left\tDaily workload\tWatched (%)")
	fmt.Fprintln(tw, rule)
	for _, r := range wl.Rows {
		days, daily := strconv.Itoa(r.DaysLeft), FormatClock(r.Daily)
		if r.Overdue {
			days, daily = "-", "Overdue!"
		}
		pct := "n/a"
		if r.PercentOK {
			pct = strconv.Itoa(r.Percent) + "%"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", cellName(r.Lecture.Name), FormatClock(r.TimeLeft), days, daily, pct)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s\nDaily estimate: %s\n", rule, FormatClock(wl.TotalMinutes))
	return err
}

// WriteSelection prints the one-line-per-lecture list shown before index prompts.
// When all is false only active lectures are listed.
func WriteSelection(w io.Writer, items []lecture.Lecture, all bool) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, l := range items {
		switch {
		case all:
			fmt.Fprintf(tw, "%d.\t%s\tStatus: %s\n", l.Index, cellName(l.Name), l.Status)
		case l.Active():
			fmt.Fprintf(tw, "%d.\t%s\tT: %d\n", l.Index, cellName(l.Name), TimeLeft(l))
		}
	}
	return tw.Flush()
}
