// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package report

import "github.com/ManuGH/lectrack/internal/lecture"

// WorkloadRow is the daily workload of one active lecture.
type WorkloadRow struct {
	Lecture  lecture.Lecture
	TimeLeft int
	DaysLeft int
	Overdue  bool // DaysLeft < 1; excluded from the total
	Daily    int  // minutes per day, 0 when overdue, negative when over-watched

	Percent   int
	PercentOK bool // false when the lecture has no duration
}

// Workload is the per-lecture and aggregate daily workload.
type Workload struct {
	Today        lecture.Date
	Rows         []WorkloadRow
	TotalMinutes int
}

// DailyWorkload computes, for every active lecture, the minutes per day needed
// to finish by its deadline: floor(time left / whole days left). Over-watched
// lectures yield a negative share that is subtracted from the total.
func DailyWorkload(items []lecture.Lecture, today lecture.Date) Workload {
	w := Workload{Today: today}
	for _, l := range items {
		if !l.Active() {
			continue
		}
		row := WorkloadRow{
			Lecture:  l,
			TimeLeft: TimeLeft(l),
			DaysLeft: today.DaysUntil(l.Deadline),
		}
		if pct, err := Percent(l.AmountWatched, l.Duration); err == nil {
			row.Percent, row.PercentOK = pct, true
		}

		if row.DaysLeft < 1 {
			row.Overdue = true
		} else {
			row.Daily = floorDiv(row.TimeLeft, row.DaysLeft)
			w.TotalMinutes += row.Daily
		}
		w.Rows = append(w.Rows, row)
	}
	return w
}
