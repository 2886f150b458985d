package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/database"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/logger"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/timewindow"
)

type compensationRepositoryImpl struct {
	db *database.DB
}

func NewCompensationRepository(db *database.DB) roster.CompensationRepository {
	return &compensationRepositoryImpl{db: db}
}

func compensationOverlapQuery(w timewindow.Window) (string, []interface{}) {
	predicate, args := timewindow.SQLOverlap("start_time", "end_time", 1, w)
	query := fmt.Sprintf(`
		SELECT id, employee_key, start_time, end_time,
			   COALESCE(description, ''), COALESCE(status, '')
		FROM compensation_records
		WHERE start_time IS NOT NULL AND end_time IS NOT NULL
		  AND %s
		ORDER BY id
	`, predicate)
	return query, args
}

// ListOverlapping implements roster.CompensationRepository.
func (r *compensationRepositoryImpl) ListOverlapping(ctx context.Context, window timewindow.Window) ([]roster.CompensationRecord, error) {
	q := GetQuerier(ctx, r.db)
	query, args := compensationOverlapQuery(window)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query compensation records: %w", err)
	}
	defer rows.Close()

	var records []roster.CompensationRecord
	for rows.Next() {
		var c roster.CompensationRecord
		if err := rows.Scan(
			&c.ID, &c.EmployeeKey, &c.StartDateTime, &c.EndDateTime,
			&c.Description, &c.Status,
		); err != nil {
			return nil, fmt.Errorf("scan compensation record: %w", err)
		}
		records = append(records, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate compensation records: %w", err)
	}

	logger.From(ctx).Debug("compensation records loaded", "count", len(records))
	return records, nil
}
