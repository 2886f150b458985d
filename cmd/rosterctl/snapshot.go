package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/logger"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/timewindow"
	rosterService "github.com/cmlabs-hris/roster-viewer-go/internal/service/roster"
)

// Snapshot is the file form of one refresh cycle: the employee list plus
// every record collection.
type Snapshot struct {
	Employees []roster.Employee `json:"employees"`
	Records   roster.Records    `json:"records"`
}

func readSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// snapshotStore serves a decoded snapshot through the repository
// interfaces, applying the same window overlap the database queries use.
type snapshotStore struct {
	snap *Snapshot
}

func (s *Snapshot) repositories() rosterService.Repositories {
	store := snapshotStore{snap: s}
	return rosterService.Repositories{
		Employees:     snapshotEmployees{store},
		Leaves:        snapshotLeaves{store},
		Compensations: snapshotCompensations{store},
		CourtFrees:    snapshotCourtFrees{store},
		Schedules:     snapshotSchedules{store},
		Indicators:    snapshotIndicators{store},
	}
}

type snapshotEmployees struct{ snapshotStore }

// List returns every employee. Filtering happens in the service.
func (s snapshotEmployees) List(ctx context.Context, filter roster.EmployeeFilter) ([]roster.Employee, error) {
	logger.From(ctx).Debug("snapshot employees listed", "count", len(s.snap.Employees))
	return s.snap.Employees, nil
}

type snapshotLeaves struct{ snapshotStore }

func (s snapshotLeaves) ListOverlapping(ctx context.Context, w timewindow.Window) ([]roster.LeaveRecord, error) {
	var out []roster.LeaveRecord
	for _, l := range s.snap.Records.Leaves {
		if timewindow.OverlapsDates(l.StartDate, l.EndDate, w) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s snapshotLeaves) ListReasons(ctx context.Context) ([]roster.LeaveReason, error) {
	return s.snap.Records.Reasons, nil
}

type snapshotCompensations struct{ snapshotStore }

func (s snapshotCompensations) ListOverlapping(ctx context.Context, w timewindow.Window) ([]roster.CompensationRecord, error) {
	var out []roster.CompensationRecord
	for _, c := range s.snap.Records.Compensations {
		if timewindow.Overlaps(c.StartDateTime, c.EndDateTime, w) {
			out = append(out, c)
		}
	}
	return out, nil
}

type snapshotCourtFrees struct{ snapshotStore }

// ListOverlapping treats a recurring series as running until its
// recurrence end date.
func (s snapshotCourtFrees) ListOverlapping(ctx context.Context, w timewindow.Window) ([]roster.CourtFreeRecord, error) {
	var out []roster.CourtFreeRecord
	for _, c := range s.snap.Records.CourtFrees {
		if c.StartDateTime.After(w.End) {
			continue
		}
		if !c.EndDateTime.Before(w.Start) ||
			(c.RecurrenceEndDate != nil && !timewindow.CalendarDate(*c.RecurrenceEndDate, w.Start.Location()).Before(w.Start)) {
			out = append(out, c)
		}
	}
	return out, nil
}

type snapshotSchedules struct{ snapshotStore }

// ListEffectiveBefore returns every version. The resolver picks the active
// one per day.
func (s snapshotSchedules) ListEffectiveBefore(ctx context.Context, day time.Time) ([]roster.WeeklyScheduleVersion, error) {
	return s.snap.Records.ScheduleVersions, nil
}

type snapshotIndicators struct{ snapshotStore }

func (s snapshotIndicators) List(ctx context.Context) ([]roster.DayIndicator, error) {
	return s.snap.Records.Indicators, nil
}
