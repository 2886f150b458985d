package roster

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/timewindow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	assert.Nil(t, Aggregate(roster.ResolvedCell{}))
	assert.Nil(t, Aggregate(roster.ResolvedCell{Events: []roster.ResolvedEvent{{Title: "only"}}}))

	cell := roster.ResolvedCell{Events: []roster.ResolvedEvent{
		{Title: "Vacation", Subtitle: "2025-03-10..2025-03-12"},
		{Title: "Compensation", Subtitle: "09:00-11:00 (2.0h)", Description: "late hearing"},
		{Title: "Court-free", Subtitle: "2025-03-11"},
	}}
	layered := Aggregate(cell)
	require.NotNil(t, layered)
	assert.Equal(t, 3, layered.Count)
	assert.Equal(t, []roster.LayeredItem{
		{Title: "Vacation", Subtitle: "2025-03-10..2025-03-12"},
		{Title: "Compensation", Subtitle: "09:00-11:00 (2.0h)", Description: "late hearing"},
		{Title: "Court-free", Subtitle: "2025-03-11"},
	}, layered.Items)
}

func marchDays(t *testing.T) []time.Time {
	t.Helper()
	w, err := timewindow.VisibleRange(date(2025, 3, 10), timewindow.GranularityMonth)
	require.NoError(t, err)
	return w.Days()
}

func TestResolveGrid_MonthScenario(t *testing.T) {
	employees := []roster.Employee{
		jdoe,
		{ID: 2, Username: "asmith", Team: "Civil", Active: true},
		{ID: 3, Username: "   ", Team: "Civil", Active: true},
	}
	days := marchDays(t)
	require.Len(t, days, 31)

	grid, err := ResolveGrid(context.Background(), employees, days, vacation(), testOptions(), 4)
	require.NoError(t, err)

	require.Len(t, grid.Rows, 2)
	require.Len(t, grid.Skipped, 1)
	assert.Equal(t, 3, grid.Skipped[0].ID)
	assert.Equal(t, "jdoe", grid.Rows[0].Key)
	assert.Equal(t, "asmith", grid.Rows[1].Key)
	assert.Len(t, grid.Cells(), 62)

	for i, cell := range grid.Rows[0].Cells {
		day := i + 1
		if day >= 10 && day <= 12 {
			assert.Equal(t, roster.EventKindLeave, cell.PrimaryKind, "day %d", day)
			assert.Equal(t, "#3366CC", cell.PrimaryBackground)
			assert.Equal(t, "VAC", cell.PrimaryLabel)
			continue
		}
		assert.Empty(t, cell.PrimaryKind, "day %d", day)
	}

	for _, cell := range grid.Rows[1].Cells {
		assert.Empty(t, cell.Events)
	}
}

func TestResolveGrid_Idempotent(t *testing.T) {
	employees := []roster.Employee{jdoe, {ID: 2, Username: "asmith", Active: true}}
	days := marchDays(t)
	r := NewResolver(vacation(), testOptions())

	first, err := r.ResolveGrid(context.Background(), employees, days, 3)
	require.NoError(t, err)
	second, err := r.ResolveGrid(context.Background(), employees, days, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveGrid_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewResolver(vacation(), testOptions())
	_, err := r.ResolveGrid(ctx, []roster.Employee{jdoe}, marchDays(t), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelectEmployees(t *testing.T) {
	employees := []roster.Employee{
		{ID: 1, Username: "zed", Team: "Criminal", Active: true},
		{ID: 2, Username: `CORP\Bob`, Team: "Civil", Active: true},
		{ID: 3, Username: "amy", Team: "civil", Active: true},
		{ID: 4, Username: "hidden", Team: "Civil", Active: true, Hidden: true},
		{ID: 5, Username: "gone", Team: "Civil", Active: false},
	}

	ids := func(es []roster.Employee) []int {
		out := make([]int, 0, len(es))
		for _, e := range es {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []int{3, 2, 1}, ids(SelectEmployees(employees, roster.EmployeeFilter{})))
	assert.Equal(t, []int{3, 2, 5, 4, 1}, ids(SelectEmployees(employees, roster.EmployeeFilter{IncludeHidden: true, IncludeInactive: true})))

	team := " CIVIL "
	assert.Equal(t, []int{3, 2}, ids(SelectEmployees(employees, roster.EmployeeFilter{Team: &team})))
}
