package roster

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/colorutil"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/identity"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/timewindow"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/validator"
)

const (
	DefaultColor        = "#9E9E9E"
	DefaultWeekendColor = "#EEEEEE"
	DefaultCourtFree    = "#8E24AA"
	DefaultCourtLabel   = "ZTV"
	DefaultCompIcon     = "⏱"
	DefaultLabelLength  = 3
)

type Options struct {
	Location     *time.Location
	Normalizer   identity.Normalizer
	ShowWeekends bool
	Now          func() time.Time

	DefaultColor        string
	WeekendColor        string
	CourtFreeColor      string
	CourtFreeLabel      string
	CompensationPattern string
	LabelLength         int
}

func DefaultOptions() Options {
	return Options{
		Location:     time.Local,
		ShowWeekends: true,
		Now:          time.Now,
	}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.DefaultColor == "" {
		o.DefaultColor = DefaultColor
	}
	if o.WeekendColor == "" {
		o.WeekendColor = DefaultWeekendColor
	}
	if o.CourtFreeColor == "" {
		o.CourtFreeColor = DefaultCourtFree
	}
	if o.CourtFreeLabel == "" {
		o.CourtFreeLabel = DefaultCourtLabel
	}
	if o.CompensationPattern == "" {
		o.CompensationPattern = DefaultCompIcon
	}
	if o.LabelLength <= 0 {
		o.LabelLength = DefaultLabelLength
	}
	return o
}

// SkippedRecord is a record that can never match because its dates are
// missing, sentinel or inverted.
type SkippedRecord struct {
	Kind   roster.EventKind
	ID     int
	Reason string
}

type leaveSpan struct {
	record roster.LeaveRecord
	start  time.Time
	end    time.Time
}

type compensationSpan struct {
	record roster.CompensationRecord
	start  time.Time
	end    time.Time
}

// Resolver decides the visual state of employee days against one immutable
// snapshot of records. It holds no mutable state after construction and is
// safe for concurrent use.
type Resolver struct {
	opts  Options
	today time.Time

	leaves        *identity.Index[leaveSpan]
	compensations *identity.Index[compensationSpan]
	courtFrees    *identity.Index[courtFreeSeries]
	schedules     *identity.Index[scheduleEntry]

	reasons          map[string]roster.LeaveReason
	indicatorsByCode map[string]roster.DayIndicator
	indicatorsByDate map[string][]roster.DayIndicator

	skipped []SkippedRecord
}

func NewResolver(records roster.Records, opts Options) *Resolver {
	opts = opts.withDefaults()
	loc := opts.Location

	r := &Resolver{
		opts:             opts,
		today:            timewindow.DateIn(opts.Now(), loc),
		leaves:           identity.NewIndex[leaveSpan](opts.Normalizer),
		compensations:    identity.NewIndex[compensationSpan](opts.Normalizer),
		courtFrees:       identity.NewIndex[courtFreeSeries](opts.Normalizer),
		schedules:        identity.NewIndex[scheduleEntry](opts.Normalizer),
		reasons:          make(map[string]roster.LeaveReason, len(records.Reasons)),
		indicatorsByCode: make(map[string]roster.DayIndicator),
		indicatorsByDate: make(map[string][]roster.DayIndicator),
	}

	r.indexLeaves(records.Leaves)
	r.indexCompensations(records.Compensations)
	r.indexCourtFrees(records.CourtFrees)
	r.indexSchedules(records.ScheduleVersions)
	r.indexReferences(records.Reasons, records.Indicators)

	return r
}

// Leave order is ascending id so the lowest id owns the cell when several
// leaves overlap.
func (r *Resolver) indexLeaves(leaves []roster.LeaveRecord) {
	sorted := append([]roster.LeaveRecord(nil), leaves...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, l := range sorted {
		if !timewindow.IsValidDate(l.StartDate) || !timewindow.IsValidDate(l.EndDate) {
			r.skip(roster.EventKindLeave, l.ID, "invalid start or end date")
			continue
		}
		span := leaveSpan{
			record: l,
			start:  timewindow.CalendarDate(l.StartDate, r.opts.Location),
			end:    timewindow.CalendarDate(l.EndDate, r.opts.Location),
		}
		if span.end.Before(span.start) {
			r.skip(roster.EventKindLeave, l.ID, "end date before start date")
			continue
		}
		if !r.leaves.Add(l.EmployeeKey, span) {
			r.skip(roster.EventKindLeave, l.ID, "no employee key")
		}
	}
}

func (r *Resolver) indexCompensations(records []roster.CompensationRecord) {
	sorted := append([]roster.CompensationRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, c := range sorted {
		if !timewindow.IsValidDate(c.StartDateTime) || !timewindow.IsValidDate(c.EndDateTime) {
			r.skip(roster.EventKindCompensation, c.ID, "invalid start or end time")
			continue
		}
		if !c.EndDateTime.After(c.StartDateTime) {
			r.skip(roster.EventKindCompensation, c.ID, "end time not after start time")
			continue
		}
		span := compensationSpan{
			record: c,
			start:  timewindow.DateIn(c.StartDateTime, r.opts.Location),
			end:    timewindow.DateIn(c.EndDateTime, r.opts.Location),
		}
		if !r.compensations.Add(c.EmployeeKey, span) {
			r.skip(roster.EventKindCompensation, c.ID, "no employee key")
		}
	}
}

func (r *Resolver) indexCourtFrees(records []roster.CourtFreeRecord) {
	sorted := append([]roster.CourtFreeRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, c := range sorted {
		series, ok := newCourtFreeSeries(c, r.opts.Location)
		if !ok {
			r.skip(roster.EventKindCourtFree, c.ID, "invalid dates or missing recurrence end")
			continue
		}
		if !r.courtFrees.Add(c.EmployeeKey, series) {
			r.skip(roster.EventKindCourtFree, c.ID, "no employee key")
		}
	}
}

func (r *Resolver) indexSchedules(versions []roster.WeeklyScheduleVersion) {
	for _, v := range versions {
		eff, ok := EffectiveDate(v, r.opts.Location)
		if !ok {
			r.skip(roster.EventKindScheduleMarker, v.ID, "no effective date")
			continue
		}
		if !r.schedules.Add(v.EmployeeKey, scheduleEntry{effective: eff, version: v}) {
			r.skip(roster.EventKindScheduleMarker, v.ID, "no employee key")
		}
	}
	r.schedules.SortStableFunc(compareScheduleEntries)
}

func (r *Resolver) indexReferences(reasons []roster.LeaveReason, indicators []roster.DayIndicator) {
	for _, reason := range reasons {
		r.reasons[strings.TrimSpace(reason.ID)] = reason
	}

	sorted := append([]roster.DayIndicator(nil), indicators...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, ind := range sorted {
		code := strings.ToUpper(strings.TrimSpace(ind.Title))
		if code != "" {
			if _, exists := r.indicatorsByCode[code]; !exists {
				r.indicatorsByCode[code] = ind
			}
		}
		if day, ok := validator.FindCalendarDate(ind.Description, r.opts.Location); ok {
			k := day.Format(time.DateOnly)
			r.indicatorsByDate[k] = append(r.indicatorsByDate[k], ind)
		}
	}
}

func (r *Resolver) skip(kind roster.EventKind, id int, reason string) {
	r.skipped = append(r.skipped, SkippedRecord{Kind: kind, ID: id, Reason: reason})
}

// Skipped lists the records excluded from matching while indexing.
func (r *Resolver) Skipped() []SkippedRecord {
	return append([]SkippedRecord(nil), r.skipped...)
}

func (r *Resolver) Today() time.Time {
	return r.today
}

func (r *Resolver) Location() *time.Location {
	return r.opts.Location
}

// cellInput is what each stage sees for one employee on one day.
type cellInput struct {
	username string
	day      time.Time
}

type stage struct {
	name    string
	primary bool
	overlay bool
	match   func(r *Resolver, in cellInput) []roster.ResolvedEvent
}

// pipeline is evaluated in order for every cell; the first primary stage
// producing an event owns the cell's primary state.
var pipeline = []stage{
	{name: "leave", primary: true, match: (*Resolver).matchLeaves},
	{name: "compensation", overlay: true, match: (*Resolver).matchCompensations},
	{name: "court_free", primary: true, match: (*Resolver).matchCourtFrees},
	{name: "schedule_marker", primary: true, match: (*Resolver).matchScheduleMarker},
	{name: "day_indicator", primary: true, match: (*Resolver).matchDayIndicators},
}

// Resolve evaluates one employee on one day.
func (r *Resolver) Resolve(emp roster.Employee, day time.Time) roster.ResolvedCell {
	day = timewindow.DateIn(day, r.opts.Location)
	cell := roster.ResolvedCell{
		Date:        day,
		EmployeeKey: identity.Normalize(emp.Username),
		Events:      []roster.ResolvedEvent{},
		IsWeekend:   timewindow.IsWeekend(day),
		IsToday:     timewindow.SameDay(day, r.today),
	}

	if cell.EmployeeKey != "" {
		in := cellInput{username: emp.Username, day: day}
		primarySet := false

		for _, st := range pipeline {
			events := st.match(r, in)
			if len(events) == 0 {
				continue
			}
			cell.Events = append(cell.Events, events...)
			if st.overlay {
				cell.Overlays = append(cell.Overlays, events...)
			}
			if st.primary && !primarySet {
				owner := events[0]
				cell.PrimaryKind = owner.Kind
				cell.PrimarySourceID = owner.SourceID
				cell.PrimaryBackground = owner.Color
				cell.PrimaryLabel = owner.Label
				cell.PrimaryPattern = owner.Pattern
				primarySet = true
			}
		}
	}

	if cell.PrimaryKind == "" && cell.IsWeekend && r.opts.ShowWeekends {
		cell.PrimaryBackground = r.opts.WeekendColor
	}

	cell.Layered = Aggregate(cell)
	return cell
}

func (r *Resolver) matchLeaves(in cellInput) []roster.ResolvedEvent {
	var events []roster.ResolvedEvent
	for _, span := range r.leaves.Lookup(in.username) {
		if isWithdrawn(string(span.record.Status)) {
			continue
		}
		if in.day.Before(span.start) || in.day.After(span.end) {
			continue
		}

		l := span.record
		title, label, color := strings.TrimSpace(l.ReasonID), strings.TrimSpace(l.ReasonID), r.opts.DefaultColor
		if reason, ok := r.reasons[strings.TrimSpace(l.ReasonID)]; ok {
			title = reason.Title
			label = r.shortLabel(reason.Title)
			if colorutil.IsValidHex(reason.Color) {
				color = reason.Color
			}
		}

		events = append(events, roster.ResolvedEvent{
			Kind:        roster.EventKindLeave,
			SourceID:    l.ID,
			Title:       title,
			Subtitle:    dateRange(span.start, span.end),
			Description: l.Description,
			Color:       color,
			Label:       label,
		})
	}
	return events
}

func (r *Resolver) matchCompensations(in cellInput) []roster.ResolvedEvent {
	var events []roster.ResolvedEvent
	for _, span := range r.compensations.Lookup(in.username) {
		// Compensations go through the same approval workflow as leave.
		if isWithdrawn(span.record.Status) {
			continue
		}
		if in.day.Before(span.start) || in.day.After(span.end) {
			continue
		}

		c := span.record
		events = append(events, roster.ResolvedEvent{
			Kind:        roster.EventKindCompensation,
			SourceID:    c.ID,
			Title:       "Compensation",
			Subtitle:    r.timeRange(c.StartDateTime, c.EndDateTime),
			Description: c.Description,
			Pattern:     r.opts.CompensationPattern,
		})
	}
	return events
}

func (r *Resolver) matchCourtFrees(in cellInput) []roster.ResolvedEvent {
	var events []roster.ResolvedEvent
	for _, s := range r.courtFrees.Lookup(in.username) {
		if !s.matches(in.day) {
			continue
		}

		subtitle := dateRange(s.start, s.last)
		if s.record.Recurring {
			subtitle = fmt.Sprintf("%s until %s", s.pattern, s.last.Format(time.DateOnly))
		}
		events = append(events, roster.ResolvedEvent{
			Kind:        roster.EventKindCourtFree,
			SourceID:    s.record.ID,
			Title:       "Court-free",
			Subtitle:    subtitle,
			Description: s.record.Description,
			Color:       r.opts.CourtFreeColor,
			Label:       r.opts.CourtFreeLabel,
		})
	}
	return events
}

func (r *Resolver) matchScheduleMarker(in cellInput) []roster.ResolvedEvent {
	version, ok := scheduleHistory(r.schedules.Lookup(in.username)).activeOn(in.day)
	if !ok {
		return nil
	}
	daySchedule, ok := version.Day(in.day.Weekday())
	if !ok {
		return nil
	}

	code := strings.ToUpper(strings.TrimSpace(daySchedule.DayType))
	if !validator.IsInSlice(code, roster.ModifiedDayTypes) {
		return nil
	}
	ind, ok := r.indicatorsByCode[code]
	if !ok {
		return nil
	}

	color := ind.Color
	if !colorutil.IsValidHex(color) {
		color = r.opts.DefaultColor
	}
	return []roster.ResolvedEvent{{
		Kind:        roster.EventKindScheduleMarker,
		SourceID:    version.ID,
		Title:       ind.Title,
		Subtitle:    scheduleSubtitle(code, daySchedule),
		Description: ind.Description,
		Color:       color,
		Label:       code,
		Pattern:     ind.Pattern,
	}}
}

func (r *Resolver) matchDayIndicators(in cellInput) []roster.ResolvedEvent {
	var events []roster.ResolvedEvent
	for _, ind := range r.indicatorsByDate[in.day.Format(time.DateOnly)] {
		color := ind.Color
		if !colorutil.IsValidHex(color) {
			color = r.opts.DefaultColor
		}
		events = append(events, roster.ResolvedEvent{
			Kind:        roster.EventKindDayIndicator,
			SourceID:    ind.ID,
			Title:       ind.Title,
			Subtitle:    in.day.Format(time.DateOnly),
			Description: ind.Description,
			Color:       color,
			Label:       r.shortLabel(ind.Title),
			Pattern:     ind.Pattern,
		})
	}
	return events
}

// shortLabel is the first LabelLength runes of title, upper-cased.
func (r *Resolver) shortLabel(title string) string {
	runes := []rune(strings.TrimSpace(title))
	if len(runes) > r.opts.LabelLength {
		runes = runes[:r.opts.LabelLength]
	}
	return strings.ToUpper(string(runes))
}

func (r *Resolver) timeRange(start, end time.Time) string {
	start, end = start.In(r.opts.Location), end.In(r.opts.Location)
	if timewindow.SameDay(start, end) {
		return fmt.Sprintf("%s-%s (%.1fh)", start.Format("15:04"), end.Format("15:04"), end.Sub(start).Hours())
	}
	return fmt.Sprintf("%s..%s (%.1fh)", start.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04"), end.Sub(start).Hours())
}

func scheduleSubtitle(code string, d roster.DaySchedule) string {
	if d.Start == "" && d.End == "" {
		return fmt.Sprintf("%s (%.1fh)", code, d.TotalHours)
	}
	return fmt.Sprintf("%s %s-%s (%.1fh)", code, d.Start, d.End, d.TotalHours)
}

func dateRange(start, end time.Time) string {
	if timewindow.SameDay(start, end) {
		return start.Format(time.DateOnly)
	}
	return start.Format(time.DateOnly) + ".." + end.Format(time.DateOnly)
}

func isWithdrawn(status string) bool {
	status = strings.TrimSpace(status)
	return strings.EqualFold(status, string(roster.LeaveStatusRejected)) ||
		strings.EqualFold(status, string(roster.LeaveStatusCancelled))
}
