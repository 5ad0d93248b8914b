// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/ManuGH/lectrack/internal/lecture"
	"github.com/ManuGH/lectrack/internal/report"
)

func (s *Shell) add(ctx context.Context) error {
	s.screen.clear()
	name, err := s.prompt("\nEnter video name: ")
	if err != nil {
		return err
	}
	durationInput, err := s.prompt("Enter video duration (HH:MM): ")
	if err != nil {
		return err
	}
	duration, err := lecture.ParseDuration(durationInput)
	if err != nil {
		s.report(ctx, err)
		return nil
	}
	deadlineInput, err := s.prompt("Enter deadline (DD-MM-YYYY or +n): ")
	if err != nil {
		return err
	}
	deadline, err := lecture.ParseDeadline(deadlineInput, s.repo.Today())
	if err != nil {
		s.report(ctx, err)
		return nil
	}

	l, err := s.repo.Add(ctx, name, duration, deadline)
	if err != nil && !errors.Is(err, lecture.ErrSaveFailed) {
		s.report(ctx, err)
		return nil
	}
	s.screen.clear()
	fmt.Fprintf(s.out, "Added %q as lecture %d (deadline %s).\n", l.Name, l.Index, l.Deadline)
	if err != nil {
		s.report(ctx, err)
	}
	return nil
}

func (s *Shell) reload(ctx context.Context) error {
	s.screen.clear()
	if err := s.repo.Load(ctx); err != nil {
		s.report(ctx, err)
		return nil
	}
	fmt.Fprintf(s.out, "Loaded %d lectures.\n", s.repo.Len())
	return nil
}

func (s *Shell) save(ctx context.Context) error {
	s.screen.clear()
	if err := s.repo.Save(ctx); err != nil {
		s.report(ctx, err)
		return nil
	}
	fmt.Fprintf(s.out, "Saved %d lectures.\n", s.repo.Len())
	return nil
}

func (s *Shell) show(_ context.Context) error {
	s.screen.clear()
	fmt.Fprint(s.out, "\n\n")
	if err := report.WriteLectures(s.out, s.repo.List(), s.barWidth); err != nil {
		return err
	}
	return s.pause()
}

func (s *Shell) workload(_ context.Context) error {
	s.screen.clear()
	fmt.Fprint(s.out, "\n\n")
	wl := report.DailyWorkload(s.repo.List(), s.repo.Today())
	if err := report.WriteWorkload(s.out, wl); err != nil {
		return err
	}
	return s.pause()
}

// selectLecture lists lectures under title and reads an index that exists in the list.
// ok is false when the input was rejected and already reported.
func (s *Shell) selectLecture(ctx context.Context, title, label string, all bool) (l lecture.Lecture, ok bool, err error) {
	s.screen.clear()
	fmt.Fprintf(s.out, "\n\n%s\n\n", title)
	if err := report.WriteSelection(s.out, s.repo.List(), all); err != nil {
		return lecture.Lecture{}, false, err
	}
	input, err := s.prompt(label)
	if err != nil {
		return lecture.Lecture{}, false, err
	}
	index, err := lecture.ParseIndex(input)
	if err != nil {
		s.report(ctx, err)
		return lecture.Lecture{}, false, nil
	}
	l, err = s.repo.Get(index)
	if err != nil {
		s.report(ctx, err)
		return lecture.Lecture{}, false, nil
	}
	return l, true, nil
}

func (s *Shell) modify(ctx context.Context) error {
	l, ok, err := s.selectLecture(ctx, "Select lecture to modify:", "\nEnter lecture index: ", false)
	if err != nil || !ok {
		return err
	}
	input, err := s.prompt("Enter amount watched: ")
	if err != nil {
		return err
	}
	delta, err := lecture.ParseInt("amount watched", input)
	if err != nil {
		s.report(ctx, err)
		return nil
	}

	updated, err := s.repo.ModifyProgress(ctx, l.Index, delta)
	if err != nil && !errors.Is(err, lecture.ErrSaveFailed) {
		s.report(ctx, err)
		return nil
	}
	fmt.Fprintf(s.out, "%s: %s watched, %s left.\n",
		updated.Name, report.FormatClock(updated.AmountWatched), report.FormatClock(updated.TimeLeft()))
	if err != nil {
		s.report(ctx, err)
	}
	return nil
}

func (s *Shell) changeDeadline(ctx context.Context) error {
	l, ok, err := s.selectLecture(ctx, "Select lecture to change the deadline:", "\nEnter lecture index: ", false)
	if err != nil || !ok {
		return err
	}
	input, err := s.prompt("Enter the number of days to add or subtract from the deadline: ")
	if err != nil {
		return err
	}
	days, err := lecture.ParseInt("days", input)
	if err != nil {
		s.report(ctx, err)
		return nil
	}

	change, err := s.repo.ChangeDeadline(ctx, l.Index, days)
	if err != nil && !errors.Is(err, lecture.ErrSaveFailed) {
		s.report(ctx, err)
		return nil
	}
	fmt.Fprintf(s.out, "Deadline for %s changed from %s to %s\n", change.Lecture.Name, change.Old, change.New)
	if err != nil {
		s.report(ctx, err)
	}
	return nil
}

func (s *Shell) hibernate(ctx context.Context) error {
	l, ok, err := s.selectLecture(ctx, "Select lecture to hibernate or activate:", "\nEnter lecture index: ", true)
	if err != nil || !ok {
		return err
	}
	updated, err := s.repo.ToggleHibernate(ctx, l.Index)
	if err != nil && !errors.Is(err, lecture.ErrSaveFailed) {
		s.report(ctx, err)
		return nil
	}
	fmt.Fprintf(s.out, "Lecture '%s' is now %s\n", updated.Name, updated.Status)
	if err != nil {
		s.report(ctx, err)
	}
	return nil
}

func (s *Shell) remove(ctx context.Context) error {
	s.screen.clear()
	fmt.Fprint(s.out, "\n")
	if err := report.WriteSelection(s.out, s.repo.List(), false); err != nil {
		return err
	}
	input, err := s.prompt("\nEnter the index of the lecture you want to remove: ")
	if err != nil {
		return err
	}
	index, err := lecture.ParseIndex(input)
	if err != nil {
		s.report(ctx, err)
		return nil
	}

	_, err = s.repo.Remove(ctx, index)
	switch {
	case errors.Is(err, lecture.ErrNotFound):
		fmt.Fprintf(s.out, "No lecture found with index %d.\n", index)
		return nil
	case err != nil && !errors.Is(err, lecture.ErrSaveFailed):
		s.report(ctx, err)
		return nil
	}
	fmt.Fprintf(s.out, "Lecture with index %d removed successfully.\n", index)
	if err != nil {
		s.report(ctx, err)
	}
	return nil
}

func (s *Shell) editNotes(ctx context.Context) error {
	if s.notes == nil {
		fmt.Fprintln(s.out, "Notes are not configured.")
		return nil
	}
	if err := s.notes.Open(ctx); err != nil {
		s.report(ctx, err)
		return nil
	}
	s.screen.clear()
	return nil
}

func (s *Shell) flush(ctx context.Context) error {
	s.screen.clear()
	answer, err := s.prompt("Are you sure you want to flush the database? This action cannot be undone. (y/n): ")
	if err != nil {
		return err
	}
	flushed, err := s.repo.Flush(ctx, lecture.Confirmed(answer))
	if !flushed {
		fmt.Fprintln(s.out, "Database flush cancelled.")
		return nil
	}
	fmt.Fprintln(s.out, "All lectures removed from the database.")
	if err != nil {
		s.report(ctx, err)
	}
	return nil
}
