package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/database"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/logger"
)

var scheduleWeekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

type weeklyScheduleRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewWeeklyScheduleRepository(db *database.DB, loc *time.Location) roster.WeeklyScheduleRepository {
	return &weeklyScheduleRepositoryImpl{db: db, loc: orLocal(loc)}
}

// daySelectColumns expands to start, end, hours and type for every weekday.
func daySelectColumns() string {
	cols := make([]string, 0, len(scheduleWeekdays))
	for _, d := range scheduleWeekdays {
		cols = append(cols, fmt.Sprintf(
			"COALESCE(%[1]s_start, ''), COALESCE(%[1]s_end, ''), COALESCE(%[1]s_hours, 0)::float8, COALESCE(%[1]s_type, '')", d,
		))
	}
	return strings.Join(cols, ",\n\t\t\t   ")
}

// Versions without a veranderingsdatum are returned regardless of their
// ingangsdatum; the resolver decides which one is active.
func weeklyScheduleQuery(day time.Time) (string, []interface{}) {
	query := fmt.Sprintf(`
		SELECT id, employee_key, veranderingsdatum, ingangsdatum,
			   %s
		FROM weekly_schedules
		WHERE veranderingsdatum IS NULL OR veranderingsdatum <= $1::date
		ORDER BY employee_key, id
	`, daySelectColumns())
	return query, []interface{}{day.Format(time.DateOnly)}
}

// ListEffectiveBefore implements roster.WeeklyScheduleRepository.
func (r *weeklyScheduleRepositoryImpl) ListEffectiveBefore(ctx context.Context, day time.Time) ([]roster.WeeklyScheduleVersion, error) {
	q := GetQuerier(ctx, r.db)
	query, args := weeklyScheduleQuery(day)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query weekly schedules: %w", err)
	}
	defer rows.Close()

	var versions []roster.WeeklyScheduleVersion
	for rows.Next() {
		var v roster.WeeklyScheduleVersion
		dest := []interface{}{&v.ID, &v.EmployeeKey, &v.Veranderingsdatum, &v.Ingangsdatum}
		for _, d := range []*roster.DaySchedule{&v.Monday, &v.Tuesday, &v.Wednesday, &v.Thursday, &v.Friday} {
			dest = append(dest, &d.Start, &d.End, &d.TotalHours, &d.DayType)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan weekly schedule: %w", err)
		}
		v.Veranderingsdatum = calendarDatePtr(v.Veranderingsdatum, r.loc)
		v.Ingangsdatum = calendarDatePtr(v.Ingangsdatum, r.loc)
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weekly schedules: %w", err)
	}

	logger.From(ctx).Debug("weekly schedule versions loaded", "count", len(versions))
	return versions, nil
}
