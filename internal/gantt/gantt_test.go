package gantt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/opsdash/internal/gantt"
	"github.com/gyaneshwarpardhi/opsdash/internal/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var tasks = []store.Task{
	{ID: "1", StartDate: "2024-01-15", EndDate: "2024-01-30", Progress: 100, Status: store.StatusCompleted},
	{ID: "2", StartDate: "2024-01-25", EndDate: "2024-02-15", Progress: 85, Status: store.StatusInProgress},
	{ID: "3", StartDate: "2024-02-10", EndDate: "2024-03-20", Progress: 60, Status: store.StatusInProgress},
}

func TestChartRange(t *testing.T) {
	r := gantt.ChartRange(tasks, time.Now())
	assert.Equal(t, date(2024, 1, 8), r.Start)
	assert.Equal(t, date(2024, 3, 27), r.End)

	now := date(2030, 1, 1)
	empty := gantt.ChartRange(nil, now)
	assert.Equal(t, gantt.Range{Start: now, End: now}, empty)
}

func TestPlace(t *testing.T) {
	r := gantt.Range{Start: date(2024, 1, 1), End: date(2024, 1, 11)}
	left, width := gantt.Place(store.Task{StartDate: "2024-01-03", EndDate: "2024-01-08"}, r)
	assert.InDelta(t, 20.0, left, 1e-9)
	assert.InDelta(t, 50.0, width, 1e-9)

	left, width = gantt.Place(store.Task{StartDate: "2024-01-03", EndDate: "2024-01-08"}, gantt.Range{Start: r.Start, End: r.Start})
	assert.Zero(t, left)
	assert.Zero(t, width)
}

func TestPeriods(t *testing.T) {
	r := gantt.Range{Start: date(2024, 1, 8), End: date(2024, 3, 27)}

	months := gantt.Periods(r, gantt.ModeMonth)
	require.Len(t, months, 3)
	assert.Equal(t, "Jan 2024", months[0].Label)
	assert.Equal(t, "2024-0", months[0].Key)
	assert.Equal(t, "Mar 2024", months[2].Label)

	weeks := gantt.Periods(r, gantt.ModeWeek)
	assert.Len(t, weeks, 12)
	assert.Equal(t, "Jan 8", weeks[0].Label)
	assert.Equal(t, "2024-01-15", weeks[1].Key)
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 15, gantt.DurationDays(tasks[0]))
	assert.Equal(t, "15 days", gantt.FormatDuration(15))
	assert.Equal(t, "1 day", gantt.FormatDuration(1))
	assert.Zero(t, gantt.DurationDays(store.Task{StartDate: "bad"}))
}

func TestBuild(t *testing.T) {
	tl := gantt.Build(tasks, gantt.ModeMonth, time.Now())
	require.Len(t, tl.Bars, 3)
	assert.InDelta(t, 0.0, tl.Bars[0].Left-7/tl.Range.Days()*100, 1e-9)
	assert.Equal(t, 15, tl.Bars[0].DurationDays)
	assert.Equal(t, "15 days", tl.Bars[0].DurationLabel)
	assert.Equal(t, 82, tl.Summary.AverageProgress)
	assert.Equal(t, map[string]int{store.StatusCompleted: 1, store.StatusInProgress: 2}, tl.Summary.ByStatus)

	empty := gantt.Build(nil, gantt.ModeWeek, date(2024, 1, 1))
	assert.Empty(t, empty.Bars)
	assert.Len(t, empty.Periods, 1)
	assert.Zero(t, empty.Summary.AverageProgress)
}

func TestParseMode(t *testing.T) {
	m, err := gantt.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, gantt.ModeMonth, m)
	m, err = gantt.ParseMode("week")
	require.NoError(t, err)
	assert.Equal(t, gantt.ModeWeek, m)
	_, err = gantt.ParseMode("year")
	assert.Error(t, err)
}
