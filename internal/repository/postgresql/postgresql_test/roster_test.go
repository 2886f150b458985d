package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/timewindow"
	"github.com/cmlabs-hris/roster-viewer-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, setup *TestDatabaseSetup) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	statements := []string{
		`INSERT INTO employees (username, display_name, team, active, hidden)
		 VALUES ('CORP\jdoe', 'J. Doe', 'Civil', TRUE, FALSE),
		        ('asmith', 'A. Smith', 'Civil', TRUE, TRUE),
		        ('old', 'Old Timer', 'Criminal', FALSE, FALSE)`,
		`INSERT INTO leave_reasons (id, title, color) VALUES ('VAC-1', 'Vacation', '#3366CC')`,
		`INSERT INTO leave_records (employee_key, reason_id, start_date, end_date, status)
		 VALUES ('jdoe', 'VAC-1', '2025-03-10', '2025-03-12', 'Approved'),
		        ('jdoe', 'VAC-1', '2025-05-01', '2025-05-02', 'Approved')`,
		`INSERT INTO court_free_records (employee_key, start_time, end_time, recurring, recurrence_pattern, recurrence_end_date)
		 VALUES ('jdoe', '2025-01-06 09:00+00', '2025-01-06 17:00+00', TRUE, 'Weekly', '2025-06-30')`,
		`INSERT INTO weekly_schedules (employee_key, veranderingsdatum, ingangsdatum, wednesday_type, wednesday_hours)
		 VALUES ('jdoe', NULL, '2025-01-01', 'VVO', 4),
		        ('jdoe', '2025-09-01', NULL, 'VVD', 0)`,
	}

	err := postgresql.WithTransaction(ctx, setup.DB, func(ctx context.Context) error {
		q := postgresql.GetQuerier(ctx, setup.DB)
		for _, stmt := range statements {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestRepositories_LoadMarchSnapshot(t *testing.T) {
	setup := NewTestDatabase(t)
	seed(t, setup)
	ctx := context.Background()

	w, err := timewindow.VisibleRange(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), timewindow.GranularityMonth)
	require.NoError(t, err)

	employees, err := postgresql.NewEmployeeRepository(setup.DB).List(ctx, roster.EmployeeFilter{})
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, `CORP\jdoe`, employees[0].Username)

	leaves, err := postgresql.NewLeaveRepository(setup.DB, time.UTC).ListOverlapping(ctx, w)
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), leaves[0].StartDate)
	assert.Equal(t, roster.LeaveStatusApproved, leaves[0].Status)

	reasons, err := postgresql.NewLeaveRepository(setup.DB, time.UTC).ListReasons(ctx)
	require.NoError(t, err)
	assert.Equal(t, []roster.LeaveReason{{ID: "VAC-1", Title: "Vacation", Color: "#3366CC"}}, reasons)

	courtFrees, err := postgresql.NewCourtFreeRepository(setup.DB, time.UTC).ListOverlapping(ctx, w)
	require.NoError(t, err)
	require.Len(t, courtFrees, 1, "recurring series reaches into the window")
	assert.Equal(t, roster.RecurrenceWeekly, courtFrees[0].RecurrencePattern)

	versions, err := postgresql.NewWeeklyScheduleRepository(setup.DB, time.UTC).ListEffectiveBefore(ctx, w.End)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, roster.DayTypeMorning, versions[0].Wednesday.DayType)
	assert.Equal(t, 4.0, versions[0].Wednesday.TotalHours)

	indicators, err := postgresql.NewDayIndicatorRepository(setup.DB).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, indicators)

	comps, err := postgresql.NewCompensationRepository(setup.DB).ListOverlapping(ctx, w)
	require.NoError(t, err)
	assert.Empty(t, comps)
}
