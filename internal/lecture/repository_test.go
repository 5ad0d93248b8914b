// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lecture

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records saves so tests can assert that failed operations do not write.
type fakeStore struct {
	items   []Lecture
	saves   int
	saveErr error
}

func (f *fakeStore) Load(context.Context) ([]Lecture, error) {
	return slices.Clone(f.items), nil
}

func (f *fakeStore) Save(_ context.Context, items []Lecture) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.items = slices.Clone(items)
	return nil
}

var fixedNow = time.Date(2026, time.March, 10, 14, 30, 0, 0, time.Local)

func newTestRepo(t *testing.T, items ...Lecture) (*Repository, *fakeStore) {
	t.Helper()
	fs := &fakeStore{items: items}
	repo := NewRepository(fs, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, repo.Load(context.Background()))
	return repo, fs
}

func lec(name string, duration, watched int, deadline Date, status Status) Lecture {
	return Lecture{Name: name, Duration: duration, AmountWatched: watched, Deadline: deadline, Status: status}
}

var dateCmp = cmp.Comparer(func(a, b Date) bool { return a.Equal(b) })

func assertIndexed(t *testing.T, items []Lecture) {
	t.Helper()
	for i, l := range items {
		assert.Equal(t, i+1, l.Index, "lecture %q at position %d", l.Name, i)
	}
}

func TestLoad_Reindexes(t *testing.T) {
	today := DateOf(fixedNow)
	a := lec("a", 10, 0, today, StatusActive)
	a.Index = 7
	b := lec("b", 10, 0, today, StatusHibernated)
	b.Index = 7

	repo, _ := newTestRepo(t, a, b)
	assertIndexed(t, repo.List())
}

func TestAdd_RelativeDeadlineExample(t *testing.T) {
	repo, fs := newTestRepo(t)
	today := repo.Today()

	duration, err := ParseDuration("01:30")
	require.NoError(t, err)
	deadline, err := ParseDeadline("+5", today)
	require.NoError(t, err)

	got, err := repo.Add(context.Background(), "Intro", duration, deadline)
	require.NoError(t, err)

	want := Lecture{
		Name:          "Intro",
		Duration:      90,
		AmountWatched: 0,
		Deadline:      NewDate(2026, time.March, 15),
		Status:        StatusActive,
		Index:         1,
	}
	if diff := cmp.Diff(want, got, dateCmp); diff != "" {
		t.Fatalf("added lecture mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, fs.saves)
	if diff := cmp.Diff([]Lecture{want}, fs.items, dateCmp); diff != "" {
		t.Fatalf("persisted lectures mismatch (-want +got):\n%s", diff)
	}
}

func TestAdd_KeepsListSortedByDeadline(t *testing.T) {
	today := DateOf(fixedNow)
	repo, _ := newTestRepo(t,
		lec("late", 60, 0, today.AddDays(10), StatusActive),
		lec("early", 60, 0, today.AddDays(1), StatusActive),
	)
	ctx := context.Background()

	for _, off := range []int{5, 0, 20, 5} {
		_, err := repo.Add(ctx, "x", 30, today.AddDays(off))
		require.NoError(t, err)

		items := repo.List()
		assert.True(t, slices.IsSortedFunc(items, func(a, b Lecture) int {
			return a.Deadline.Compare(b.Deadline)
		}), "list not sorted after adding +%d", off)
		assertIndexed(t, items)
	}
}

func TestAdd_StableForEqualDeadlines(t *testing.T) {
	today := DateOf(fixedNow)
	repo, _ := newTestRepo(t, lec("first", 10, 0, today, StatusActive))

	got, err := repo.Add(context.Background(), "second", 10, today)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Index)

	names := []string{}
	for _, l := range repo.List() {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"first", "second"}, names)
}

func TestAdd_RejectsInvalid(t *testing.T) {
	repo, fs := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, "   ", 10, repo.Today())
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = repo.Add(ctx, "neg", -1, repo.Today())
	require.ErrorIs(t, err, ErrNegativeDuration)

	_, err = repo.Add(ctx, "far", 10, NewDate(10240, time.July, 7))
	require.ErrorIs(t, err, ErrDateOutOfRange)

	_, err = repo.Add(ctx, "early", 10, MinDate.AddDays(-1))
	require.ErrorIs(t, err, ErrDateOutOfRange)

	assert.Zero(t, repo.Len())
	assert.Zero(t, fs.saves)
}

func TestAdd_NormalizesName(t *testing.T) {
	repo, _ := newTestRepo(t)

	// "e" followed by a combining acute accent composes to U+00E9.
	got, err := repo.Add(context.Background(), "  Cafe\u0301 ", 10, repo.Today())
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9", got.Name)
}

func TestModifyProgress(t *testing.T) {
	today := DateOf(fixedNow)
	repo, fs := newTestRepo(t,
		lec("a", 60, 10, today, StatusActive),
		lec("b", 60, 0, today, StatusHibernated),
	)
	ctx := context.Background()

	got, err := repo.ModifyProgress(ctx, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, 35, got.AmountWatched)

	// Hibernated lectures are addressed by position too.
	got, err = repo.ModifyProgress(ctx, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Name)
	assert.Equal(t, 5, got.AmountWatched)

	// No clamp to duration.
	got, err = repo.ModifyProgress(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 135, got.AmountWatched)
	assert.Equal(t, -75, got.TimeLeft())

	assert.Equal(t, 3, fs.saves)
}

func TestModifyProgress_Errors(t *testing.T) {
	today := DateOf(fixedNow)
	repo, fs := newTestRepo(t, lec("a", 60, 10, today, StatusActive))
	ctx := context.Background()

	for _, idx := range []int{0, -1, 2} {
		_, err := repo.ModifyProgress(ctx, idx, 5)
		require.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)

		var ie *IndexError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, idx, ie.Index)
		assert.Equal(t, 1, ie.Len)
	}

	_, err := repo.ModifyProgress(ctx, 1, -11)
	require.ErrorIs(t, err, ErrNegativeProgress)

	assert.Equal(t, 10, repo.List()[0].AmountWatched)
	assert.Zero(t, fs.saves)
}

func TestChangeDeadline(t *testing.T) {
	today := DateOf(fixedNow)
	repo, fs := newTestRepo(t,
		lec("a", 60, 0, today, StatusActive),
		lec("b", 60, 0, today.AddDays(3), StatusActive),
	)
	ctx := context.Background()

	change, err := repo.ChangeDeadline(ctx, 1, 7)
	require.NoError(t, err)
	assert.True(t, change.Old.Equal(today))
	assert.True(t, change.New.Equal(today.AddDays(7)))
	assert.Equal(t, "a", change.Lecture.Name)

	change, err = repo.ChangeDeadline(ctx, 1, -2)
	require.NoError(t, err)
	assert.True(t, change.New.Equal(today.AddDays(5)))

	// No re-sort on deadline changes.
	assert.Equal(t, "a", repo.List()[0].Name)
	assert.Equal(t, 2, fs.saves)

	_, err = repo.ChangeDeadline(ctx, 3, 1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, 2, fs.saves)
}

func TestChangeDeadline_OutOfRange(t *testing.T) {
	today := DateOf(fixedNow)
	repo, fs := newTestRepo(t, lec("a", 60, 0, today, StatusActive))
	ctx := context.Background()

	for _, delta := range []int{3000000, -3000000, today.DaysUntil(MaxDate) + 1, math.MaxInt, math.MinInt} {
		_, err := repo.ChangeDeadline(ctx, 1, delta)
		require.ErrorIs(t, err, ErrDateOutOfRange, "delta %d", delta)
	}
	assert.True(t, repo.List()[0].Deadline.Equal(today))
	assert.Zero(t, fs.saves)

	change, err := repo.ChangeDeadline(ctx, 1, today.DaysUntil(MaxDate))
	require.NoError(t, err)
	assert.True(t, change.New.Equal(MaxDate))
	assert.Equal(t, 1, fs.saves)
}

func TestRemove(t *testing.T) {
	today := DateOf(fixedNow)
	repo, fs := newTestRepo(t,
		lec("a", 60, 0, today, StatusActive),
		lec("b", 60, 0, today, StatusHibernated),
		lec("c", 60, 0, today, StatusActive),
	)
	ctx := context.Background()

	_, err := repo.Remove(ctx, 2)
	require.ErrorIs(t, err, ErrNotFound, "hibernated lectures are not removable")
	_, err = repo.Remove(ctx, 9)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, fs.saves)

	removed, err := repo.Remove(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", removed.Name)

	items := repo.List()
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].Name)
	assertIndexed(t, items)
	assert.Equal(t, 1, fs.saves)
}

func TestToggleHibernate_TwiceRestores(t *testing.T) {
	today := DateOf(fixedNow)
	repo, fs := newTestRepo(t, lec("a", 60, 0, today, StatusActive))
	ctx := context.Background()

	got, err := repo.ToggleHibernate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusHibernated, got.Status)

	got, err = repo.ToggleHibernate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, got.Status)
	assert.Equal(t, 2, fs.saves)

	_, err = repo.ToggleHibernate(ctx, 2)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, 2, fs.saves)
}

func TestFlush(t *testing.T) {
	today := DateOf(fixedNow)
	repo, fs := newTestRepo(t, lec("a", 60, 0, today, StatusActive), lec("b", 30, 0, today, StatusActive))
	ctx := context.Background()
	before := repo.List()

	flushed, err := repo.Flush(ctx, Confirmed("n"))
	require.NoError(t, err)
	assert.False(t, flushed)
	assert.Zero(t, fs.saves)
	if diff := cmp.Diff(before, repo.List(), dateCmp); diff != "" {
		t.Fatalf("unconfirmed flush changed the list (-before +after):\n%s", diff)
	}

	flushed, err = repo.Flush(ctx, Confirmed("Y"))
	require.NoError(t, err)
	assert.True(t, flushed)
	assert.Zero(t, repo.Len())
	assert.Equal(t, 1, fs.saves)
	assert.Empty(t, fs.items)
}

func TestSaveError_IsWrapped(t *testing.T) {
	boom := errors.New("disk full")
	repo, fs := newTestRepo(t)
	fs.saveErr = boom

	l, err := repo.Add(context.Background(), "a", 10, repo.Today())
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrSaveFailed)
	// The mutation is kept in memory even though the save failed.
	assert.Equal(t, "a", l.Name)
	assert.Equal(t, 1, repo.Len())
}

func TestReindex(t *testing.T) {
	items := make([]Lecture, 5)
	for i := range items {
		items[i].Index = 42
	}
	Reindex(items)
	assertIndexed(t, items)

	Reindex(nil)
}

func TestList_ReturnsCopy(t *testing.T) {
	repo, _ := newTestRepo(t, lec("a", 60, 0, DateOf(fixedNow), StatusActive))
	items := repo.List()
	items[0].Name = "changed"
	assert.Equal(t, "a", repo.List()[0].Name)
}

func TestGet(t *testing.T) {
	repo, _ := newTestRepo(t,
		lec("a", 60, 0, DateOf(fixedNow), StatusActive),
		lec("b", 30, 0, DateOf(fixedNow), StatusHibernated),
	)

	got, err := repo.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Name)

	var idxErr *IndexError
	_, err = repo.Get(3)
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, 2, idxErr.Len)
}
