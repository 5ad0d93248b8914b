// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package lecture

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	xglog "github.com/ManuGH/lectrack/internal/log"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
)

// Store persists the whole lecture list. Save replaces whatever was stored before.
type Store interface {
	Load(ctx context.Context) ([]Lecture, error)
	Save(ctx context.Context, items []Lecture) error
}

// DeadlineChange describes a deadline shift for reporting.
type DeadlineChange struct {
	Lecture Lecture
	Old     Date
	New     Date
}

// Repository owns the lecture list of a session. Every successful mutation is
// followed by a save of the full list.
type Repository struct {
	store  Store
	items  []Lecture
	now    func() time.Time
	logger zerolog.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the clock used for relative deadlines and reports.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRepository creates an empty repository backed by store.
// Call Load to read persisted lectures.
func NewRepository(store Store, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		now:    time.Now,
		logger: xglog.WithComponent("lecture"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Today returns the current calendar date according to the repository clock.
func (r *Repository) Today() Date {
	return DateOf(r.now())
}

// List returns a copy of the lectures in list order.
func (r *Repository) List() []Lecture {
	return slices.Clone(r.items)
}

// Len returns the number of lectures, active or not.
func (r *Repository) Len() int {
	return len(r.items)
}

// Load replaces the in-memory list with the persisted one and reindexes it.
func (r *Repository) Load(ctx context.Context) error {
	items, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load lectures: %w", err)
	}
	Reindex(items)
	r.items = items
	r.log(ctx).Debug().
		Str(xglog.FieldEvent, "lecture.loaded").
		Int(xglog.FieldCount, len(items)).
		Msg("lectures loaded")
	return nil
}

// Save writes the full list to the store.
func (r *Repository) Save(ctx context.Context) error {
	if err := r.store.Save(ctx, slices.Clone(r.items)); err != nil {
		r.log(ctx).Error().Err(err).
			Str(xglog.FieldEvent, "lecture.save_failed").
			Msg("failed to save lectures")
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return nil
}

// Add appends a new active lecture, re-sorts the list by deadline and saves.
func (r *Repository) Add(ctx context.Context, name string, durationMinutes int, deadline Date) (Lecture, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return Lecture{}, ErrEmptyName
	}
	if durationMinutes < 0 {
		return Lecture{}, ErrNegativeDuration
	}
	if !deadline.InRange() {
		return Lecture{}, fmt.Errorf("%w: %s", ErrDateOutOfRange, deadline)
	}

	l := Lecture{
		Name:          name,
		Duration:      durationMinutes,
		AmountWatched: 0,
		Deadline:      deadline,
		AmountDone:    0,
		Status:        StatusActive,
	}
	r.items = append(r.items, l)
	slices.SortStableFunc(r.items, func(a, b Lecture) int {
		return a.Deadline.Compare(b.Deadline)
	})
	Reindex(r.items)

	// The new lecture is the last one with this name and deadline after a stable sort.
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].Name == name && r.items[i].Deadline.Equal(deadline) {
			l = r.items[i]
			break
		}
	}

	r.log(ctx).Info().
		Str(xglog.FieldEvent, "lecture.added").
		Str(xglog.FieldName, l.Name).
		Int(xglog.FieldIndex, l.Index).
		Stringer(xglog.FieldDeadline, l.Deadline).
		Msg("lecture added")
	return l, r.Save(ctx)
}

// ModifyProgress adds deltaMinutes to the watched time of the lecture at the
// 1-based position index. Watched time may exceed the duration.
func (r *Repository) ModifyProgress(ctx context.Context, index, deltaMinutes int) (Lecture, error) {
	pos, err := r.position(index)
	if err != nil {
		return Lecture{}, err
	}
	l := &r.items[pos]
	if l.AmountWatched+deltaMinutes < 0 {
		return *l, fmt.Errorf("%w: %d%+d", ErrNegativeProgress, l.AmountWatched, deltaMinutes)
	}
	l.AmountWatched += deltaMinutes

	r.log(ctx).Info().
		Str(xglog.FieldEvent, "lecture.progress").
		Int(xglog.FieldIndex, l.Index).
		Int("delta", deltaMinutes).
		Int("watched", l.AmountWatched).
		Msg("lecture progress updated")
	return *l, r.Save(ctx)
}

// ChangeDeadline shifts the deadline of the lecture at the 1-based position
// index by deltaDays (negative moves it earlier).
func (r *Repository) ChangeDeadline(ctx context.Context, index, deltaDays int) (DeadlineChange, error) {
	pos, err := r.position(index)
	if err != nil {
		return DeadlineChange{}, err
	}
	l := &r.items[pos]
	shifted, err := l.Deadline.ShiftDays(deltaDays)
	if err != nil {
		return DeadlineChange{}, err
	}
	change := DeadlineChange{Old: l.Deadline, New: shifted}
	l.Deadline = change.New
	change.Lecture = *l

	r.log(ctx).Info().
		Str(xglog.FieldEvent, "lecture.deadline_changed").
		Int(xglog.FieldIndex, l.Index).
		Stringer("old_deadline", change.Old).
		Stringer("new_deadline", change.New).
		Msg("lecture deadline changed")
	return change, r.Save(ctx)
}

// Remove deletes the first active lecture whose Index equals index.
// Hibernated lectures cannot be removed this way.
func (r *Repository) Remove(ctx context.Context, index int) (Lecture, error) {
	pos := slices.IndexFunc(r.items, func(l Lecture) bool {
		return l.Index == index && l.Active()
	})
	if pos < 0 {
		return Lecture{}, fmt.Errorf("%w: no active lecture with index %d", ErrNotFound, index)
	}
	removed := r.items[pos]
	r.items = slices.Delete(r.items, pos, pos+1)
	Reindex(r.items)

	r.log(ctx).Info().
		Str(xglog.FieldEvent, "lecture.removed").
		Str(xglog.FieldName, removed.Name).
		Int(xglog.FieldIndex, index).
		Msg("lecture removed")
	return removed, r.Save(ctx)
}

// ToggleHibernate flips the lecture at the 1-based position index between
// active and hibernated.
func (r *Repository) ToggleHibernate(ctx context.Context, index int) (Lecture, error) {
	pos, err := r.position(index)
	if err != nil {
		return Lecture{}, err
	}
	l := &r.items[pos]
	l.Status = l.Status.Toggle()

	r.log(ctx).Info().
		Str(xglog.FieldEvent, "lecture.status_changed").
		Int(xglog.FieldIndex, l.Index).
		Stringer(xglog.FieldStatus, l.Status).
		Msg("lecture status changed")
	return *l, r.Save(ctx)
}

// Flush removes every lecture when confirmed is true. Without confirmation
// nothing changes and nothing is written. It reports whether the list was flushed.
func (r *Repository) Flush(ctx context.Context, confirmed bool) (bool, error) {
	if !confirmed {
		r.log(ctx).Debug().Str(xglog.FieldEvent, "lecture.flush_cancelled").Msg("flush cancelled")
		return false, nil
	}
	n := len(r.items)
	r.items = r.items[:0]

	r.log(ctx).Warn().
		Str(xglog.FieldEvent, "lecture.flushed").
		Int(xglog.FieldCount, n).
		Msg("all lectures removed")
	return true, r.Save(ctx)
}

// Get returns the lecture at the 1-based position index.
func (r *Repository) Get(index int) (Lecture, error) {
	pos, err := r.position(index)
	if err != nil {
		return Lecture{}, err
	}
	return r.items[pos], nil
}

// position validates a 1-based index against the full list and returns the slice position.
func (r *Repository) position(index int) (int, error) {
	if index < 1 || index > len(r.items) {
		return 0, &IndexError{Index: index, Len: len(r.items)}
	}
	return index - 1, nil
}

func (r *Repository) log(ctx context.Context) *zerolog.Logger {
	l := xglog.WithContext(ctx, r.logger)
	return &l
}
