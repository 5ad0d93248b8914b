// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package shell

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/ManuGH/lectrack/internal/lecture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	items   []lecture.Lecture
	saves   int
	saveErr error
}

func (f *fakeStore) Load(context.Context) ([]lecture.Lecture, error) {
	return slices.Clone(f.items), nil
}

func (f *fakeStore) Save(_ context.Context, items []lecture.Lecture) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.items = slices.Clone(items)
	return nil
}

type fakeNotes struct{ opened int }

func (n *fakeNotes) Open(context.Context) error {
	n.opened++
	return nil
}

// onceNotifier reports a change on the first poll only.
type onceNotifier struct{ fired bool }

func (n *onceNotifier) Changed() bool {
	if n.fired {
		return false
	}
	n.fired = true
	return true
}

var fixedNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)

func today() lecture.Date { return lecture.DateOf(fixedNow) }

func lec(name string, duration, watched int, deadline lecture.Date, status lecture.Status) lecture.Lecture {
	return lecture.Lecture{Name: name, Duration: duration, AmountWatched: watched, Deadline: deadline, Status: status}
}

func run(t *testing.T, fs *fakeStore, input string, opts ...Option) string {
	t.Helper()
	repo := lecture.NewRepository(fs, lecture.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, repo.Load(context.Background()))

	var out bytes.Buffer
	sh := New(repo, strings.NewReader(input), &out, opts...)
	require.NoError(t, sh.Run(context.Background()))
	return out.String()
}

func TestRun_InvalidChoice(t *testing.T) {
	fs := &fakeStore{}
	out := run(t, fs, "x\nq\n")

	assert.Contains(t, out, "Invalid choice, try again.")
	assert.Equal(t, 2, strings.Count(out, "||lecture videos||"), "menu is shown again")
	assert.Zero(t, fs.saves)
}

func TestRun_EOFQuits(t *testing.T) {
	out := run(t, &fakeStore{}, "")
	assert.Contains(t, out, "Enter your choice: ")
}

func TestRun_EOFInsidePromptQuits(t *testing.T) {
	fs := &fakeStore{}
	run(t, fs, "a\nIntro\n")
	assert.Zero(t, fs.saves)
}

func TestAdd(t *testing.T) {
	fs := &fakeStore{items: []lecture.Lecture{lec("Later", 30, 0, today().AddDays(30), lecture.StatusActive)}}
	out := run(t, fs, "a\nIntro\n01:30\n+5\nq\n")

	require.Equal(t, 1, fs.saves)
	require.Len(t, fs.items, 2)
	got := fs.items[0]
	assert.Equal(t, "Intro", got.Name)
	assert.Equal(t, 90, got.Duration)
	assert.Zero(t, got.AmountWatched)
	assert.True(t, got.Deadline.Equal(today().AddDays(5)))
	assert.Equal(t, lecture.StatusActive, got.Status)
	assert.Equal(t, 1, got.Index)
	assert.Contains(t, out, `Added "Intro" as lecture 1`)
}

func TestAdd_MalformedInputDoesNotSave(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"duration", "a\nIntro\n1h30\nq\n", `invalid duration "1h30"`},
		{"deadline", "a\nIntro\n01:00\n31-02-2026\nq\n", `invalid deadline "31-02-2026"`},
		{"name", "a\n   \n01:00\n+1\nq\n", "lecture name is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeStore{}
			out := run(t, fs, tt.input)
			assert.Contains(t, out, tt.want)
			assert.Zero(t, fs.saves)
		})
	}
}

func TestModify(t *testing.T) {
	fs := &fakeStore{items: []lecture.Lecture{lec("A", 100, 10, today(), lecture.StatusActive)}}
	out := run(t, fs, "m\n1\n25\nq\n")

	assert.Contains(t, out, "1.  A  T: 90")
	require.Equal(t, 1, fs.saves)
	assert.Equal(t, 35, fs.items[0].AmountWatched)
}

func TestModify_InvalidIndexDoesNotSave(t *testing.T) {
	fs := &fakeStore{items: []lecture.Lecture{lec("A", 100, 10, today(), lecture.StatusActive)}}
	out := run(t, fs, "m\n9\nq\n")

	assert.Contains(t, out, "invalid lecture index 9: expected 1..1")
	assert.NotContains(t, out, "Enter amount watched", "amount is not asked for a missing lecture")
	assert.Zero(t, fs.saves)
	assert.Equal(t, 10, fs.items[0].AmountWatched)
}

func TestChangeDeadline(t *testing.T) {
	fs := &fakeStore{items: []lecture.Lecture{lec("A", 100, 0, lecture.NewDate(2026, time.March, 10), lecture.StatusActive)}}
	out := run(t, fs, "c\n1\n-3\nq\n")

	assert.Contains(t, out, "Deadline for A changed from 10-03-2026 to 07-03-2026")
	assert.True(t, fs.items[0].Deadline.Equal(lecture.NewDate(2026, time.March, 7)))
}

func TestChangeDeadline_OutOfRangeDoesNotSave(t *testing.T) {
	fs := &fakeStore{items: []lecture.Lecture{lec("A", 100, 0, lecture.NewDate(2026, time.March, 10), lecture.StatusActive)}}
	out := run(t, fs, "c\n1\n3000000\nq\n")

	assert.Contains(t, out, "Error: date out of range")
	assert.NotContains(t, out, "Deadline for A changed")
	assert.Zero(t, fs.saves)
	assert.True(t, fs.items[0].Deadline.Equal(lecture.NewDate(2026, time.March, 10)))
}

func TestHibernate(t *testing.T) {
	fs := &fakeStore{items: []lecture.Lecture{
		lec("a", 10, 0, today(), lecture.StatusActive),
		lec("b", 10, 0, today(), lecture.StatusActive),
	}}
	out := run(t, fs, "h\n2\nq\n")

	assert.Contains(t, out, "Status: Active")
	assert.Contains(t, out, "Lecture 'b' is now Hibernated")
	assert.Equal(t, lecture.StatusHibernated, fs.items[1].Status)
}

func TestRemove(t *testing.T) {
	fs := &fakeStore{items: []lecture.Lecture{
		lec("a", 10, 0, today(), lecture.StatusActive),
		lec("b", 10, 0, today(), lecture.StatusHibernated),
		lec("c", 10, 0, today(), lecture.StatusActive),
	}}

	out := run(t, fs, "r\n2\nq\n")
	assert.Contains(t, out, "No lecture found with index 2.")
	assert.Zero(t, fs.saves)

	out = run(t, fs, "r\n1\nq\n")
	assert.Contains(t, out, "Lecture with index 1 removed successfully.")
	require.Len(t, fs.items, 2)
	assert.Equal(t, "b", fs.items[0].Name)
	assert.Equal(t, 1, fs.items[0].Index)
}

func TestFlush(t *testing.T) {
	items := []lecture.Lecture{lec("a", 10, 0, today(), lecture.StatusActive)}

	fs := &fakeStore{items: slices.Clone(items)}
	out := run(t, fs, "f\nn\nq\n")
	assert.Contains(t, out, "Database flush cancelled.")
	assert.Zero(t, fs.saves)
	assert.Len(t, fs.items, 1)

	out = run(t, fs, "f\ny\nq\n")
	assert.Contains(t, out, "All lectures removed from the database.")
	assert.Equal(t, 1, fs.saves)
	assert.Empty(t, fs.items)
}

func TestShow(t *testing.T) {
	fs := &fakeStore{items: []lecture.Lecture{
		lec("a", 100, 50, today(), lecture.StatusActive),
		lec("b", 200, 50, today(), lecture.StatusActive),
	}}
	out := run(t, fs, "s\n\nq\n")

	assert.Contains(t, out, "Progress: [██████              ] 33%")
	assert.Contains(t, out, "Press Enter to continue...")
}

func TestWorkload_Overdue(t *testing.T) {
	fs := &fakeStore{items: []lecture.Lecture{
		lec("late", 60, 0, today().AddDays(-1), lecture.StatusActive),
		lec("soon", 120, 0, today().AddDays(2), lecture.StatusActive),
	}}
	out := run(t, fs, "d\n\nq\n")

	assert.Contains(t, out, "Overdue!")
	assert.Contains(t, out, "Daily estimate: 01:00")
}

func TestNotes(t *testing.T) {
	n := &fakeNotes{}
	run(t, &fakeStore{}, "n\nq\n", WithNotes(n))
	assert.Equal(t, 1, n.opened)

	out := run(t, &fakeStore{}, "n\nq\n")
	assert.Contains(t, out, "Notes are not configured.")
}

func TestSaveFailureKeepsChange(t *testing.T) {
	fs := &fakeStore{
		items:   []lecture.Lecture{lec("a", 10, 0, today(), lecture.StatusActive)},
		saveErr: errors.New("disk full"),
	}
	out := run(t, fs, "h\n1\nq\n")

	assert.Contains(t, out, "Lecture 'a' is now Hibernated")
	assert.Contains(t, out, "Error: save lectures: disk full")
}

func TestExternalChangeReloads(t *testing.T) {
	fs := &fakeStore{}
	repo := lecture.NewRepository(fs, lecture.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, repo.Load(context.Background()))
	fs.items = []lecture.Lecture{lec("added elsewhere", 10, 0, today(), lecture.StatusActive)}

	var out bytes.Buffer
	sh := New(repo, strings.NewReader("q\n"), &out, WithChangeNotifier(&onceNotifier{}))
	require.NoError(t, sh.Run(context.Background()))

	assert.Contains(t, out.String(), "Store changed on disk, reloaded 1 lectures.")
	assert.Equal(t, 1, repo.Len())
}

func TestClearScreen(t *testing.T) {
	out := run(t, &fakeStore{}, "x\nq\n", WithClearScreen(true))
	assert.Contains(t, out, clearSequence)

	out = run(t, &fakeStore{}, "x\nq\n")
	assert.NotContains(t, out, clearSequence)
}

func TestRun_ContextCancelled(t *testing.T) {
	repo := lecture.NewRepository(&fakeStore{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(repo, strings.NewReader("q\n"), &bytes.Buffer{}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
