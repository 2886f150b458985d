package roster

import (
	"cmp"
	"slices"
	"sort"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/timewindow"
)

// EffectiveDate derives the day a schedule version takes effect.
// Veranderingsdatum wins when it holds a real date, then Ingangsdatum.
// Versions with neither are never active. Both are date-only values.
func EffectiveDate(v roster.WeeklyScheduleVersion, loc *time.Location) (time.Time, bool) {
	for _, candidate := range []*time.Time{v.Veranderingsdatum, v.Ingangsdatum} {
		if candidate != nil && timewindow.IsValidDate(*candidate) {
			return timewindow.CalendarDate(*candidate, loc), true
		}
	}
	return time.Time{}, false
}

type scheduleEntry struct {
	effective time.Time
	version   roster.WeeklyScheduleVersion
}

// scheduleHistory holds one employee's versions ordered by effective date,
// then id, both ascending.
type scheduleHistory []scheduleEntry

func newScheduleHistory(versions []roster.WeeklyScheduleVersion, loc *time.Location) scheduleHistory {
	h := make(scheduleHistory, 0, len(versions))
	for _, v := range versions {
		eff, ok := EffectiveDate(v, loc)
		if !ok {
			continue
		}
		h = append(h, scheduleEntry{effective: eff, version: v})
	}
	slices.SortStableFunc(h, compareScheduleEntries)
	return h
}

func compareScheduleEntries(a, b scheduleEntry) int {
	if c := a.effective.Compare(b.effective); c != 0 {
		return c
	}
	return cmp.Compare(a.version.ID, b.version.ID)
}

// activeOn returns the latest version effective on or before day. On equal
// effective dates the highest id wins, which the ordering puts last.
func (h scheduleHistory) activeOn(day time.Time) (roster.WeeklyScheduleVersion, bool) {
	n := sort.Search(len(h), func(i int) bool {
		return h[i].effective.After(day)
	})
	if n == 0 {
		return roster.WeeklyScheduleVersion{}, false
	}
	return h[n-1].version, true
}

// SelectActive returns the version effective on day, or nil when none is.
func SelectActive(versions []roster.WeeklyScheduleVersion, day time.Time, loc *time.Location) *roster.WeeklyScheduleVersion {
	v, ok := newScheduleHistory(versions, loc).activeOn(timewindow.DateIn(day, loc))
	if !ok {
		return nil
	}
	return &v
}
