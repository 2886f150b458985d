package roster

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/timewindow"
)

// courtFreeSeries is a court-free record with its date bounds and the
// original occurrence's weekday and day of month computed once.
type courtFreeSeries struct {
	record   roster.CourtFreeRecord
	start    time.Time
	last     time.Time
	pattern  roster.RecurrencePattern
	weekday  time.Weekday
	monthDay int
}

func newCourtFreeSeries(rec roster.CourtFreeRecord, loc *time.Location) (courtFreeSeries, bool) {
	if !timewindow.IsValidDate(rec.StartDateTime) {
		return courtFreeSeries{}, false
	}
	s := courtFreeSeries{
		record: rec,
		start:  timewindow.DateIn(rec.StartDateTime, loc),
	}

	if rec.Recurring {
		if rec.RecurrenceEndDate == nil || !timewindow.IsValidDate(*rec.RecurrenceEndDate) {
			return courtFreeSeries{}, false
		}
		s.last = timewindow.CalendarDate(*rec.RecurrenceEndDate, loc)
		s.pattern = normalizePattern(rec.RecurrencePattern)
		s.weekday = s.start.Weekday()
		s.monthDay = s.start.Day()
	} else {
		if !timewindow.IsValidDate(rec.EndDateTime) {
			return courtFreeSeries{}, false
		}
		s.last = timewindow.DateIn(rec.EndDateTime, loc)
	}

	if s.last.Before(s.start) {
		return courtFreeSeries{}, false
	}
	return s, true
}

func normalizePattern(p roster.RecurrencePattern) roster.RecurrencePattern {
	switch {
	case strings.EqualFold(string(p), string(roster.RecurrenceWeekly)):
		return roster.RecurrenceWeekly
	case strings.EqualFold(string(p), string(roster.RecurrenceMonthly)):
		return roster.RecurrenceMonthly
	}
	return roster.RecurrenceNone
}

// matches expects day at midnight in the series' location.
func (s courtFreeSeries) matches(day time.Time) bool {
	if day.Before(s.start) || day.After(s.last) {
		return false
	}
	if !s.record.Recurring {
		return true
	}

	switch s.pattern {
	case roster.RecurrenceWeekly:
		return day.Weekday() == s.weekday
	case roster.RecurrenceMonthly:
		return day.Day() == s.monthDay
	}
	return false
}

// Matches reports whether a court-free record covers day. Recurring records
// without an end date, or with an unknown pattern, never match.
func Matches(rec roster.CourtFreeRecord, day time.Time, loc *time.Location) bool {
	s, ok := newCourtFreeSeries(rec, loc)
	return ok && s.matches(timewindow.DateIn(day, loc))
}
