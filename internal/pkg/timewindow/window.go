package timewindow

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Granularity string

const (
	GranularityMonth Granularity = "month"
	GranularityWeek  Granularity = "week"
)

var GranularityValues = []string{
	string(GranularityMonth),
	string(GranularityWeek),
}

var ErrInvalidGranularity = errors.New("granularity must be 'month' or 'week'")

// minValidYear marks the "unset" sentinel used by upstream lists: any date
// in or before this year is treated as missing.
const minValidYear = 1900

// Window is an inclusive date interval. Start is at 00:00:00 and End at
// 23:59:59.999 in the same location.
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseGranularity accepts "month" or "week" in any case.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case GranularityMonth:
		return GranularityMonth, nil
	case GranularityWeek:
		return GranularityWeek, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGranularity, s)
}

// VisibleRange computes the visible interval around focus in focus's location.
func VisibleRange(focus time.Time, granularity Granularity) (Window, error) {
	day := StartOfDay(focus)

	switch granularity {
	case GranularityMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		last := start.AddDate(0, 1, -1)
		return Window{Start: start, End: EndOfDay(last)}, nil
	case GranularityWeek:
		// time.Weekday starts on Sunday; shift so Monday is offset 0.
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return Window{Start: start, End: EndOfDay(start.AddDate(0, 0, 6))}, nil
	}

	return Window{}, fmt.Errorf("%w: %q", ErrInvalidGranularity, granularity)
}

// Overlaps reports whether [start, end] intersects the window.
func Overlaps(start, end time.Time, w Window) bool {
	return !start.After(w.End) && !end.Before(w.Start)
}

// Contains reports whether t lies inside the window.
func (w Window) Contains(t time.Time) bool {
	return Overlaps(t, t, w)
}

// Days enumerates every calendar day of the window, at midnight.
func (w Window) Days() []time.Time {
	if w.End.Before(w.Start) {
		return nil
	}
	days := make([]time.Time, 0, 31)
	for d := StartOfDay(w.Start); !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 on t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DateIn converts t to loc and truncates it to midnight there.
func DateIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return StartOfDay(t.In(loc))
}

// CalendarDate reads t as a date-only value and returns midnight of that
// calendar date in loc. Unlike DateIn it never moves the date, so a DATE
// stored as UTC midnight stays on its day west of UTC.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() {
		return t
	}
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// OverlapsDates is Overlaps for a date-only [start, end] span, read as
// calendar dates in the window's location.
func OverlapsDates(start, end time.Time, w Window) bool {
	loc := w.Start.Location()
	return Overlaps(CalendarDate(start, loc), EndOfDay(CalendarDate(end, loc)), w)
}

// SameDay compares calendar dates only.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsValidDate rejects zero values and the pre-1901 "unset" sentinel.
func IsValidDate(t time.Time) bool {
	return !t.IsZero() && t.Year() > minValidYear
}

// IsWeekend reports Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
