// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package lecture holds the lecture record model and the repository that owns
// the record list for a session.
package lecture

// Status is the active/hibernated flag of a lecture.
type Status int

const (
	StatusHibernated Status = 0 // kept in storage, hidden from reports
	StatusActive     Status = 1 // shown and counted
)

// String returns the display label of the status.
func (s Status) String() string {
	if s == StatusActive {
		return "Active"
	}
	return "Hibernated"
}

// Valid reports whether s is one of the two known statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusHibernated
}

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == StatusActive {
		return StatusHibernated
	}
	return StatusActive
}

// Lecture is a video to watch before a deadline.
type Lecture struct {
	Name          string `json:"name"`
	Duration      int    `json:"duration"`       // minutes
	AmountWatched int    `json:"amount_watched"` // minutes, may exceed Duration
	Deadline      Date   `json:"deadline"`
	AmountDone    int    `json:"amount_done"` // legacy, preserved as read
	Status        Status `json:"active_status"`
	Index         int    `json:"index"` // 1-based position, see Reindex
}

// Active reports whether the lecture is counted in reports.
func (l Lecture) Active() bool {
	return l.Status == StatusActive
}

// TimeLeft returns the unwatched minutes. It is negative when the lecture
// was watched past its duration.
func (l Lecture) TimeLeft() int {
	return l.Duration - l.AmountWatched
}

// Reindex assigns Index = position+1 to every lecture in list order.
func Reindex(items []Lecture) {
	for i := range items {
		items[i].Index = i + 1
	}
}
