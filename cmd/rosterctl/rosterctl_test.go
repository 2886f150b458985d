package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/colorutil"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/timewindow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshot(t *testing.T) string {
	t.Helper()

	snap := Snapshot{
		Employees: []roster.Employee{
			{ID: 1, Username: `CORP\jdoe`, Team: "Civil", Active: true},
			{ID: 2, Username: "asmith", Team: "Civil", Active: true},
			{ID: 3, Username: "", Team: "Civil", Active: true},
		},
		Records: roster.Records{
			Leaves: []roster.LeaveRecord{{
				ID:          10,
				EmployeeKey: "jdoe",
				ReasonID:    "VAC-1",
				StartDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				EndDate:     time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			}},
			Reasons: []roster.LeaveReason{{ID: "VAC-1", Title: "Vacation", Color: "#3366CC"}},
			Compensations: []roster.CompensationRecord{{
				ID:            20,
				EmployeeKey:   "asmith",
				StartDateTime: time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC),
				EndDateTime:   time.Date(2025, 3, 11, 11, 0, 0, 0, time.UTC),
			}, {
				ID:            21,
				EmployeeKey:   "asmith",
				StartDateTime: time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC),
				EndDateTime:   time.Date(2025, 4, 2, 11, 0, 0, 0, time.UTC),
			}},
		},
	}

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeIn(t, "UTC", args...)
}

func executeIn(t *testing.T, tz string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--tz", tz, "--domain", "CORP", "--log-level", "error"))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolve_TextGrid(t *testing.T) {
	path := writeSnapshot(t)

	out, err := execute(t, "resolve", "--snapshot", path, "--date", "2025-03-11", "--view", "week", "--now", "2025-03-11")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "week 2025-03-10..2025-03-16 (light)", lines[0])
	assert.Equal(t, []string{"EMPLOYEE", "TEAM", "10", "*11", "12", "13", "14", "15", "16"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"asmith", "Civil", ".", ".+", ".", ".", ".", "~", "~"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"jdoe", "Civil", "VAC", "VAC", "VAC", ".", ".", "~", "~"}, strings.Fields(lines[3]))
	assert.Equal(t, `skipped employee 3 (""): no resolvable identifier`, lines[4])
}

func TestResolve_TextGridWestOfUTC(t *testing.T) {
	path := writeSnapshot(t)

	out, err := executeIn(t, "America/New_York", "resolve", "--snapshot", path, "--date", "2025-03-11", "--view", "week", "--now", "2025-03-11")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "week 2025-03-10..2025-03-16 (light)", lines[0])
	assert.Equal(t, []string{"asmith", "Civil", ".", ".+", ".", ".", ".", "~", "~"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"jdoe", "Civil", "VAC", "VAC", "VAC", ".", ".", "~", "~"}, strings.Fields(lines[3]))

	out, err = executeIn(t, "America/New_York", "resolve", "-s", path, "-d", "2025-03-09", "--employee", "jdoe")
	require.NoError(t, err)
	assert.NotContains(t, out, "Vacation")
}

func TestResolve_JSONGrid(t *testing.T) {
	path := writeSnapshot(t)

	out, err := execute(t, "resolve", "-s", path, "-d", "11-03-2025", "-o", "json", "--dark")
	require.NoError(t, err)

	var grid roster.GridResponse
	require.NoError(t, json.Unmarshal([]byte(out), &grid))
	assert.Equal(t, "month", grid.View)
	assert.Equal(t, "dark", grid.Theme)
	assert.Len(t, grid.Days, 31)
	require.Len(t, grid.Rows, 2)
	assert.Equal(t, "asmith", grid.Rows[0].Employee.Key)

	jdoe := grid.Rows[1]
	assert.Equal(t, "jdoe", jdoe.Employee.Key)
	assert.Equal(t, roster.EventKindLeave, jdoe.Cells[9].PrimaryKind)
	assert.Equal(t, "#3366CC", jdoe.Cells[9].Background)
	assert.Equal(t, colorutil.DarkThemeLightText, jdoe.Cells[9].TextColor)
}

func TestResolve_SingleCell(t *testing.T) {
	path := writeSnapshot(t)

	out, err := execute(t, "resolve", "-s", path, "-d", "2025-03-11", "--employee", "JDOE")
	require.NoError(t, err)
	assert.Contains(t, out, "jdoe on 2025-03-11")
	assert.Contains(t, out, "primary: leave #10 VAC bg=#3366CC")
	assert.Contains(t, out, "leave")
	assert.Contains(t, out, "Vacation")

	_, err = execute(t, "resolve", "-s", path, "-d", "2025-03-11", "--employee", "nobody")
	assert.ErrorIs(t, err, roster.ErrEmployeeNotFound)
}

func TestResolve_Errors(t *testing.T) {
	path := writeSnapshot(t)

	_, err := execute(t, "resolve", "-s", filepath.Join(t.TempDir(), "missing.json"), "-d", "2025-03-11")
	assert.ErrorContains(t, err, "read snapshot")

	_, err = execute(t, "resolve", "-s", path, "-d", "2025-03-11", "-o", "yaml")
	assert.ErrorContains(t, err, "--output")

	_, err = execute(t, "resolve", "-s", path, "-d", "2025-03-11", "--now", "tomorrow")
	assert.ErrorIs(t, err, roster.ErrInvalidFocusDate)

	_, err = execute(t, "resolve", "-s", path, "-d", "2025-03-11", "--view", "year")
	assert.Error(t, err)

	_, err = execute(t, "resolve", "-s", path)
	assert.ErrorContains(t, err, `"date" not set`)
}

func TestSnapshotStore_FiltersByWindow(t *testing.T) {
	snap, err := readSnapshot(writeSnapshot(t))
	require.NoError(t, err)

	repos := snap.repositories()
	out, err := execute(t, "window", "-d", "2025-03-11", "-o", "json")
	require.NoError(t, err)

	var resp roster.WindowResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	start, err := time.Parse(time.RFC3339Nano, resp.Start)
	require.NoError(t, err)
	end, err := time.Parse(time.RFC3339Nano, resp.End)
	require.NoError(t, err)

	comps, err := repos.Compensations.ListOverlapping(t.Context(), timewindow.Window{Start: start, End: end})
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, 20, comps[0].ID)
}

func TestWindow_Text(t *testing.T) {
	out, err := execute(t, "window", "--date", "2025-03-12", "--view", "week")
	require.NoError(t, err)

	assert.Contains(t, out, "view:  week")
	assert.Contains(t, out, "days:  2025-03-10 2025-03-11 2025-03-12 2025-03-13 2025-03-14 2025-03-15 2025-03-16")
	assert.Contains(t, out, "odata: (StartDate le datetime'2025-03-16T23:59:59Z') and (EndDate ge datetime'2025-03-10T00:00:00Z')")
	assert.Contains(t, out, "sql:   start_date <= $1::date AND end_date >= $2::date")
}

func TestContrast(t *testing.T) {
	out, err := execute(t, "contrast", "#FFFFFF", "zzz")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "#FFFFFF\t"+colorutil.LightThemeDarkText+"\tok", lines[0])
	assert.Equal(t, "zzz\t"+colorutil.LightThemeDefault+"\tinvalid", lines[1])

	out, err = execute(t, "contrast", "--dark", "000")
	require.NoError(t, err)
	assert.Equal(t, "000\t"+colorutil.DarkThemeLightText+"\tok\n", out)

	_, err = execute(t, "contrast")
	assert.Error(t, err)
}
