// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ManuGH/lectrack/internal/lecture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexed(items ...lecture.Lecture) []lecture.Lecture {
	lecture.Reindex(items)
	return items
}

func TestWriteLectures(t *testing.T) {
	hidden := active("Hidden", 50, 0, 1)
	hidden.Status = lecture.StatusHibernated
	items := indexed(active("Intro", 100, 50, 2), hidden, active("Graphs", 200, 50, 5))

	var buf bytes.Buffer
	require.NoError(t, WriteLectures(&buf, items, 20))
	out := buf.String()

	assert.Contains(t, out, "Index")
	assert.Contains(t, out, "Intro")
	assert.Contains(t, out, "00:50")
	assert.Contains(t, out, "02:30")
	assert.Contains(t, out, today.AddDays(5).String())
	assert.NotContains(t, out, "Hidden")
	assert.Contains(t, out, "Progress: ["+strings.Repeat(barFill, 6))
	assert.Contains(t, out, "] 33%")
}

func TestWriteLectures_NoDuration(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLectures(&buf, nil, 20))
	assert.Contains(t, buf.String(), "Progress: n/a")
}

func TestWriteWorkload(t *testing.T) {
	items := indexed(active("Late", 100, 10, -2), active("Soon", 120, 0, 2), active("Empty", 0, 0, 2))

	var buf bytes.Buffer
	require.NoError(t, WriteWorkload(&buf, DailyWorkload(items, today)))
	out := buf.String()

	assert.Contains(t, out, "Overdue!")
	assert.Contains(t, out, "10%")
	assert.Contains(t, out, "01:00")
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "Daily estimate: 01:00")
}

func TestWriteSelection(t *testing.T) {
	hidden := active("Hidden", 50, 0, 1)
	hidden.Status = lecture.StatusHibernated
	items := indexed(active("Intro", 100, 40, 2), hidden)

	var buf bytes.Buffer
	require.NoError(t, WriteSelection(&buf, items, false))
	assert.Contains(t, buf.String(), "1.")
	assert.Contains(t, buf.String(), "T: 60")
	assert.NotContains(t, buf.String(), "Hidden")

	buf.Reset()
	require.NoError(t, WriteSelection(&buf, items, true))
	assert.Contains(t, buf.String(), "Status: Hibernated")
	assert.Contains(t, buf.String(), "Status: Active")
}

func TestWriteTables_TabInName(t *testing.T) {
	items := indexed(active("Week\t1", 100, 0, 2))

	var buf bytes.Buffer
	require.NoError(t, WriteLectures(&buf, items, 20))
	require.NoError(t, WriteWorkload(&buf, DailyWorkload(items, today)))
	require.NoError(t, WriteSelection(&buf, items, true))
	require.NoError(t, WriteSelection(&buf, items, false))

	out := buf.String()
	assert.NotContains(t, out, "\t")
	assert.Equal(t, 4, strings.Count(out, "Week 1"))
}

func TestWriteWorkload_OverWatchedLowersEstimate(t *testing.T) {
	items := indexed(active("Soon", 120, 0, 2), active("Ahead", 60, 90, 4))

	var buf bytes.Buffer
	require.NoError(t, WriteWorkload(&buf, DailyWorkload(items, today)))
	out := buf.String()

	assert.Contains(t, out, "-00:08")
	assert.Contains(t, out, "Daily estimate: 00:52")
}
