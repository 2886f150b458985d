package roster

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/identity"
	"golang.org/x/sync/errgroup"
)

type GridRow struct {
	Employee roster.Employee
	Key      string
	Cells    []roster.ResolvedCell
}

type Grid struct {
	Rows []GridRow
	// Skipped holds employees without a usable identifier.
	Skipped []roster.Employee
}

// Cells flattens the grid row by row.
func (g Grid) Cells() []roster.ResolvedCell {
	var out []roster.ResolvedCell
	for _, row := range g.Rows {
		out = append(out, row.Cells...)
	}
	return out
}

// ResolveGrid resolves every employee for every day. Rows keep the order of
// employees; workers bounds how many rows resolve at once.
func (r *Resolver) ResolveGrid(ctx context.Context, employees []roster.Employee, days []time.Time, workers int) (Grid, error) {
	var grid Grid
	resolvable := make([]roster.Employee, 0, len(employees))
	for _, emp := range employees {
		if identity.Normalize(emp.Username) == "" {
			grid.Skipped = append(grid.Skipped, emp)
			continue
		}
		resolvable = append(resolvable, emp)
	}

	if workers <= 0 {
		workers = 1
	}

	rows := make([]GridRow, len(resolvable))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, emp := range resolvable {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cells := make([]roster.ResolvedCell, 0, len(days))
			for _, day := range days {
				cells = append(cells, r.Resolve(emp, day))
			}
			rows[i] = GridRow{Employee: emp, Key: identity.Normalize(emp.Username), Cells: cells}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Grid{}, err
	}

	grid.Rows = rows
	return grid, nil
}

// ResolveGrid builds a resolver for records and resolves the grid with it.
func ResolveGrid(ctx context.Context, employees []roster.Employee, days []time.Time, records roster.Records, opts Options, workers int) (Grid, error) {
	return NewResolver(records, opts).ResolveGrid(ctx, employees, days, workers)
}

// SelectEmployees applies the grid's employee filter and orders rows by
// team, then by normalized key, then by id.
func SelectEmployees(employees []roster.Employee, filter roster.EmployeeFilter) []roster.Employee {
	out := make([]roster.Employee, 0, len(employees))
	for _, emp := range employees {
		if emp.Hidden && !filter.IncludeHidden {
			continue
		}
		if !emp.Active && !filter.IncludeInactive {
			continue
		}
		if filter.Team != nil && !strings.EqualFold(strings.TrimSpace(emp.Team), strings.TrimSpace(*filter.Team)) {
			continue
		}
		out = append(out, emp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := strings.ToLower(out[i].Team), strings.ToLower(out[j].Team)
		if ti != tj {
			return ti < tj
		}
		ki, kj := identity.Normalize(out[i].Username), identity.Normalize(out[j].Username)
		if ki != kj {
			return ki < kj
		}
		return out[i].ID < out[j].ID
	})
	return out
}
