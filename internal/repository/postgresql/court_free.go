package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/database"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/logger"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/timewindow"
)

type courtFreeRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewCourtFreeRepository(db *database.DB, loc *time.Location) roster.CourtFreeRepository {
	return &courtFreeRepositoryImpl{db: db, loc: orLocal(loc)}
}

// A recurring series overlaps the window until its recurrence end date, not
// the end of its first occurrence. The recurrence end is a DATE and is
// compared as one.
func courtFreeOverlapQuery(w timewindow.Window) (string, []interface{}) {
	query := `
		SELECT id, employee_key, start_time, end_time,
			   recurring, COALESCE(recurrence_pattern, ''), recurrence_end_date,
			   COALESCE(description, '')
		FROM court_free_records
		WHERE start_time IS NOT NULL
		  AND start_time <= $1
		  AND (end_time >= $2 OR recurrence_end_date >= $3::date)
		ORDER BY id
	`
	return query, []interface{}{w.End, w.Start, w.Start.Format(time.DateOnly)}
}

// ListOverlapping implements roster.CourtFreeRepository.
func (r *courtFreeRepositoryImpl) ListOverlapping(ctx context.Context, window timewindow.Window) ([]roster.CourtFreeRecord, error) {
	q := GetQuerier(ctx, r.db)
	query, args := courtFreeOverlapQuery(window)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query court-free records: %w", err)
	}
	defer rows.Close()

	var records []roster.CourtFreeRecord
	for rows.Next() {
		var c roster.CourtFreeRecord
		var endTime *time.Time
		var pattern string
		if err := rows.Scan(
			&c.ID, &c.EmployeeKey, &c.StartDateTime, &endTime,
			&c.Recurring, &pattern, &c.RecurrenceEndDate,
			&c.Description,
		); err != nil {
			return nil, fmt.Errorf("scan court-free record: %w", err)
		}
		if endTime != nil {
			c.EndDateTime = *endTime
		}
		c.RecurrencePattern = roster.RecurrencePattern(pattern)
		c.RecurrenceEndDate = calendarDatePtr(c.RecurrenceEndDate, r.loc)
		records = append(records, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate court-free records: %w", err)
	}

	logger.From(ctx).Debug("court-free records loaded", "count", len(records))
	return records, nil
}
