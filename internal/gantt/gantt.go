// Package gantt turns tasks into timeline geometry: the chart range, header
// periods and the horizontal placement of each task bar.
package gantt

import (
	"fmt"
	"math"
	"time"

	"github.com/gyaneshwarpardhi/opsdash/internal/store"
	"github.com/gyaneshwarpardhi/opsdash/internal/validation"
)

// Mode selects the header granularity.
type Mode string

const (
	ModeMonth Mode = "month"
	ModeWeek  Mode = "week"
)

// Padding is added before the earliest start and after the latest end.
const Padding = 7 * 24 * time.Hour

const day = 24 * time.Hour

// Range is the visible span of the chart.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the fractional length of the range in days.
func (r Range) Days() float64 {
	return float64(r.End.Sub(r.Start)) / float64(day)
}

// Period is one header tick.
type Period struct {
	Key   string    `json:"key"`
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
}

// Bar is a task placed on the chart. Left and Width are percentages of the
// range.
type Bar struct {
	Task          store.Task `json:"task"`
	Left          float64    `json:"left"`
	Width         float64    `json:"width"`
	DurationDays  int        `json:"durationDays"`
	DurationLabel string     `json:"durationLabel"`
}

// Summary aggregates the task list.
type Summary struct {
	Total           int            `json:"total"`
	AverageProgress int            `json:"averageProgress"`
	ByStatus        map[string]int `json:"byStatus"`
}

// Timeline is everything a Gantt view needs.
type Timeline struct {
	Mode    Mode     `json:"mode"`
	Range   Range    `json:"range"`
	Periods []Period `json:"periods"`
	Bars    []Bar    `json:"bars"`
	Summary Summary  `json:"summary"`
}

// ParseMode accepts "", "month" and "week"; empty means month.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeMonth:
		return ModeMonth, nil
	case ModeWeek:
		return ModeWeek, nil
	}
	return "", fmt.Errorf("unknown timeline mode %q", s)
}

// ChartRange spans the earliest start to the latest end, padded on both
// sides. With no tasks it collapses to a zero-width range at now. Tasks with
// unparseable dates are skipped.
func ChartRange(tasks []store.Task, now time.Time) Range {
	var lo, hi time.Time
	for _, t := range tasks {
		for _, s := range []string{t.StartDate, t.EndDate} {
			d, err := validation.ParseDate(s)
			if err != nil {
				continue
			}
			if lo.IsZero() || d.Before(lo) {
				lo = d
			}
			if hi.IsZero() || d.After(hi) {
				hi = d
			}
		}
	}
	if lo.IsZero() {
		return Range{Start: now, End: now}
	}
	return Range{Start: lo.Add(-Padding), End: hi.Add(Padding)}
}

// Periods returns the header ticks from r.Start up to and including r.End.
func Periods(r Range, mode Mode) []Period {
	out := []Period{}
	for cur := r.Start; !cur.After(r.End); {
		switch mode {
		case ModeWeek:
			out = append(out, Period{Key: cur.Format("2006-01-02"), Label: cur.Format("Jan 2"), Date: cur})
			cur = cur.AddDate(0, 0, 7)
		default:
			out = append(out, Period{Key: fmt.Sprintf("%d-%d", cur.Year(), int(cur.Month())-1), Label: cur.Format("Jan 2006"), Date: cur})
			cur = cur.AddDate(0, 1, 0)
		}
	}
	return out
}

// Place positions a task within r. A zero-length range puts every bar at 0.
func Place(t store.Task, r Range) (left, width float64) {
	total := r.Days()
	if total <= 0 {
		return 0, 0
	}
	start, err1 := validation.ParseDate(t.StartDate)
	end, err2 := validation.ParseDate(t.EndDate)
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	offset := float64(start.Sub(r.Start)) / float64(day)
	duration := float64(end.Sub(start)) / float64(day)
	return offset / total * 100, duration / total * 100
}

// DurationDays is the whole number of days from start to end, rounded up.
func DurationDays(t store.Task) int {
	start, err1 := validation.ParseDate(t.StartDate)
	end, err2 := validation.ParseDate(t.EndDate)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(math.Ceil(float64(end.Sub(start)) / float64(day)))
}

// FormatDuration renders a duration the way the timeline labels it.
func FormatDuration(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// Summarize computes the rounded average progress and per-status counts.
func Summarize(tasks []store.Task) Summary {
	s := Summary{Total: len(tasks), ByStatus: map[string]int{}}
	if len(tasks) == 0 {
		return s
	}
	sum := 0
	for _, t := range tasks {
		sum += t.Progress
		s.ByStatus[t.Status]++
	}
	s.AverageProgress = int(math.Round(float64(sum) / float64(len(tasks))))
	return s
}

// Build assembles the full timeline for tasks.
func Build(tasks []store.Task, mode Mode, now time.Time) Timeline {
	r := ChartRange(tasks, now)
	tl := Timeline{
		Mode:    mode,
		Range:   r,
		Periods: Periods(r, mode),
		Bars:    make([]Bar, 0, len(tasks)),
		Summary: Summarize(tasks),
	}
	for _, t := range tasks {
		left, width := Place(t, r)
		days := DurationDays(t)
		tl.Bars = append(tl.Bars, Bar{
			Task:          t,
			Left:          left,
			Width:         width,
			DurationDays:  days,
			DurationLabel: FormatDuration(days),
		})
	}
	return tl
}
