package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/database"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/logger"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) roster.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func employeeListQuery(filter roster.EmployeeFilter) (string, []interface{}) {
	whereClause := "WHERE TRUE"
	args := []interface{}{}
	argIndex := 1

	if !filter.IncludeHidden {
		whereClause += " AND hidden = FALSE"
	}
	if !filter.IncludeInactive {
		whereClause += " AND active = TRUE"
	}
	if filter.Team != nil {
		whereClause += fmt.Sprintf(" AND LOWER(TRIM(team)) = LOWER(TRIM($%d))", argIndex)
		args = append(args, *filter.Team)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT id, username, COALESCE(display_name, ''), COALESCE(team, ''),
			   active, hidden, hearing_available
		FROM employees
		%s
		ORDER BY team, username, id
	`, whereClause)

	return query, args
}

// List implements roster.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter roster.EmployeeFilter) ([]roster.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query, args := employeeListQuery(filter)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var employees []roster.Employee
	for rows.Next() {
		var emp roster.Employee
		if err := rows.Scan(
			&emp.ID, &emp.Username, &emp.DisplayName, &emp.Team,
			&emp.Active, &emp.Hidden, &emp.HearingAvailable,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}

	logger.From(ctx).Debug("employees loaded", "count", len(employees))
	return employees, nil
}
